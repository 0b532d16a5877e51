package setuputils

import (
	"errors"
	"fmt"
)

var (
	// ErrPointAtInfinity is returned when a deserialized point is the identity
	// and the correctness policy forbids it.
	ErrPointAtInfinity = errors.New("point at infinity")

	// ErrIncorrectSubgroup is returned when a point lies on the curve but
	// outside the prime-order subgroup.
	ErrIncorrectSubgroup = errors.New("point is not in the prime-order subgroup")

	// ErrBatchSizeZero is returned when ceremony parameters request an empty batch.
	ErrBatchSizeZero = errors.New("batch size must be non-zero")

	// ErrInvalidChunk is returned when a chunk index is out of range for the
	// selected contribution mode.
	ErrInvalidChunk = errors.New("invalid chunk index")

	// ErrHashChainMismatch is returned when a response does not extend the
	// challenge it claims to extend.
	ErrHashChainMismatch = errors.New("hash chain mismatch")

	// ErrUnsupportedCurve is returned for curve identifiers the ceremony does
	// not implement.
	ErrUnsupportedCurve = errors.New("unsupported curve")
)

// LengthError reports a buffer whose size does not match the ceremony layout.
type LengthError struct {
	Expected int
	Got      int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid buffer length: expected %d, got %d", e.Expected, e.Got)
}

// RatioError reports a failed pairing ratio check.
type RatioError struct {
	Context string
}

func (e *RatioError) Error() string {
	return fmt.Sprintf("invalid ratio: %s", e.Context)
}

// GeneratorError reports an accumulator segment whose first element is not the
// group generator.
type GeneratorError struct {
	Element ElementType
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("first %s element is not the generator", e.Element)
}
