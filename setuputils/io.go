package setuputils

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// BufferSizeG1 returns the serialized size of a G1 point.
func BufferSizeG1(c UseCompression) int {
	if c == Compressed {
		return bn254.SizeOfG1AffineCompressed
	}
	return bn254.SizeOfG1AffineUncompressed
}

// BufferSizeG2 returns the serialized size of a G2 point.
func BufferSizeG2(c UseCompression) int {
	if c == Compressed {
		return bn254.SizeOfG2AffineCompressed
	}
	return bn254.SizeOfG2AffineUncompressed
}

func checkG1(p *bn254.G1Affine, check CheckForCorrectness) error {
	if check == CheckFull || check == CheckOnlyNonZero {
		if p.IsInfinity() {
			return ErrPointAtInfinity
		}
	}
	if check == CheckFull || check == CheckOnlyInGroup {
		if !p.IsInSubGroup() {
			return ErrIncorrectSubgroup
		}
	}
	return nil
}

func checkG2(p *bn254.G2Affine, check CheckForCorrectness) error {
	if check == CheckFull || check == CheckOnlyNonZero {
		if p.IsInfinity() {
			return ErrPointAtInfinity
		}
	}
	if check == CheckFull || check == CheckOnlyInGroup {
		if !p.IsInSubGroup() {
			return ErrIncorrectSubgroup
		}
	}
	return nil
}

// ReadG1 deserializes one G1 point from the start of buf and validates it
// according to the correctness policy.
func ReadG1(buf []byte, c UseCompression, check CheckForCorrectness) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	n := BufferSizeG1(c)
	if len(buf) < n {
		return p, &LengthError{Expected: n, Got: len(buf)}
	}
	dec := bn254.NewDecoder(bytes.NewReader(buf[:n]), bn254.NoSubgroupChecks())
	if err := dec.Decode(&p); err != nil {
		return p, err
	}
	if err := checkG1(&p, check); err != nil {
		return p, err
	}
	return p, nil
}

// ReadG2 deserializes one G2 point from the start of buf and validates it
// according to the correctness policy.
func ReadG2(buf []byte, c UseCompression, check CheckForCorrectness) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	n := BufferSizeG2(c)
	if len(buf) < n {
		return p, &LengthError{Expected: n, Got: len(buf)}
	}
	dec := bn254.NewDecoder(bytes.NewReader(buf[:n]), bn254.NoSubgroupChecks())
	if err := dec.Decode(&p); err != nil {
		return p, err
	}
	if err := checkG2(&p, check); err != nil {
		return p, err
	}
	return p, nil
}

// WriteG1 serializes one G1 point at the start of buf.
func WriteG1(buf []byte, p *bn254.G1Affine, c UseCompression) error {
	n := BufferSizeG1(c)
	if len(buf) < n {
		return &LengthError{Expected: n, Got: len(buf)}
	}
	if c == Compressed {
		b := p.Bytes()
		copy(buf, b[:])
	} else {
		b := p.RawBytes()
		copy(buf, b[:])
	}
	return nil
}

// WriteG2 serializes one G2 point at the start of buf.
func WriteG2(buf []byte, p *bn254.G2Affine, c UseCompression) error {
	n := BufferSizeG2(c)
	if len(buf) < n {
		return &LengthError{Expected: n, Got: len(buf)}
	}
	if c == Compressed {
		b := p.Bytes()
		copy(buf, b[:])
	} else {
		b := p.RawBytes()
		copy(buf, b[:])
	}
	return nil
}

// ReadBatchG1 deserializes count consecutive G1 points, in parallel.
func ReadBatchG1(buf []byte, count int, c UseCompression, check CheckForCorrectness) ([]bn254.G1Affine, error) {
	n := BufferSizeG1(c)
	if len(buf) < count*n {
		return nil, &LengthError{Expected: count * n, Got: len(buf)}
	}
	res := make([]bn254.G1Affine, count)
	var (
		mu   sync.Mutex
		gErr error
	)
	Execute(count, func(start, end int) {
		for i := start; i < end; i++ {
			p, err := ReadG1(buf[i*n:], c, check)
			if err != nil {
				mu.Lock()
				if gErr == nil {
					gErr = fmt.Errorf("element %d: %w", i, err)
				}
				mu.Unlock()
				return
			}
			res[i] = p
		}
	})
	if gErr != nil {
		return nil, gErr
	}
	return res, nil
}

// ReadBatchG2 deserializes count consecutive G2 points, in parallel.
func ReadBatchG2(buf []byte, count int, c UseCompression, check CheckForCorrectness) ([]bn254.G2Affine, error) {
	n := BufferSizeG2(c)
	if len(buf) < count*n {
		return nil, &LengthError{Expected: count * n, Got: len(buf)}
	}
	res := make([]bn254.G2Affine, count)
	var (
		mu   sync.Mutex
		gErr error
	)
	Execute(count, func(start, end int) {
		for i := start; i < end; i++ {
			p, err := ReadG2(buf[i*n:], c, check)
			if err != nil {
				mu.Lock()
				if gErr == nil {
					gErr = fmt.Errorf("element %d: %w", i, err)
				}
				mu.Unlock()
				return
			}
			res[i] = p
		}
	})
	if gErr != nil {
		return nil, gErr
	}
	return res, nil
}

// WriteBatchG1 serializes the points consecutively into buf, in parallel.
func WriteBatchG1(buf []byte, points []bn254.G1Affine, c UseCompression) error {
	n := BufferSizeG1(c)
	if len(buf) < len(points)*n {
		return &LengthError{Expected: len(points) * n, Got: len(buf)}
	}
	Execute(len(points), func(start, end int) {
		for i := start; i < end; i++ {
			_ = WriteG1(buf[i*n:], &points[i], c)
		}
	})
	return nil
}

// WriteBatchG2 serializes the points consecutively into buf, in parallel.
func WriteBatchG2(buf []byte, points []bn254.G2Affine, c UseCompression) error {
	n := BufferSizeG2(c)
	if len(buf) < len(points)*n {
		return &LengthError{Expected: len(points) * n, Got: len(buf)}
	}
	Execute(len(points), func(start, end int) {
		for i := start; i < end; i++ {
			_ = WriteG2(buf[i*n:], &points[i], c)
		}
	})
	return nil
}

// InitG1 fills buf with count copies of the G1 generator.
func InitG1(buf []byte, count int, c UseCompression) error {
	n := BufferSizeG1(c)
	if len(buf) < count*n {
		return &LengthError{Expected: count * n, Got: len(buf)}
	}
	_, _, g1, _ := bn254.Generators()
	var encoded []byte
	if c == Compressed {
		b := g1.Bytes()
		encoded = b[:]
	} else {
		b := g1.RawBytes()
		encoded = b[:]
	}
	Execute(count, func(start, end int) {
		for i := start; i < end; i++ {
			copy(buf[i*n:], encoded)
		}
	})
	return nil
}

// InitG2 fills buf with count copies of the G2 generator.
func InitG2(buf []byte, count int, c UseCompression) error {
	n := BufferSizeG2(c)
	if len(buf) < count*n {
		return &LengthError{Expected: count * n, Got: len(buf)}
	}
	_, _, _, g2 := bn254.Generators()
	var encoded []byte
	if c == Compressed {
		b := g2.Bytes()
		encoded = b[:]
	} else {
		b := g2.RawBytes()
		encoded = b[:]
	}
	Execute(count, func(start, end int) {
		for i := start; i < end; i++ {
			copy(buf[i*n:], encoded)
		}
	})
	return nil
}
