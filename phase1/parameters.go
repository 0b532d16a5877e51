// Package phase1 implements the first phase of a powers-of-tau trusted setup:
// accumulator initialization, contribution, verification, and the chunked
// aggregation flow that lets many participants work on slices of the
// accumulator in parallel.
package phase1

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// ContributionMode selects whether a participant processes the whole
// accumulator or one chunk of it.
type ContributionMode uint8

const (
	ContributionFull ContributionMode = iota
	ContributionChunked
)

func (m ContributionMode) String() string {
	if m == ContributionChunked {
		return "chunked"
	}
	return "full"
}

// ContributionModeFromString parses a mode name as found in CLI flags.
func ContributionModeFromString(s string) (ContributionMode, error) {
	switch s {
	case "full":
		return ContributionFull, nil
	case "chunked":
		return ContributionChunked, nil
	default:
		return ContributionFull, fmt.Errorf("unknown contribution mode %q", s)
	}
}

// ProvingSystem selects the accumulator layout.
type ProvingSystem uint8

const (
	Groth16 ProvingSystem = iota
	Marlin
)

func (s ProvingSystem) String() string {
	if s == Marlin {
		return "marlin"
	}
	return "groth16"
}

// ProvingSystemFromString parses a proving system name as found in CLI flags.
func ProvingSystemFromString(s string) (ProvingSystem, error) {
	switch s {
	case "groth16":
		return Groth16, nil
	case "marlin":
		return Marlin, nil
	default:
		return Groth16, fmt.Errorf("unknown proving system %q", s)
	}
}

// CurveParameters carries the serialized point widths of the ceremony curve.
type CurveParameters struct {
	ID               ecc.ID
	G1Size           int
	G2Size           int
	G1CompressedSize int
	G2CompressedSize int
}

// NewCurveParameters binds the ceremony to a pairing curve.
func NewCurveParameters(id ecc.ID) (CurveParameters, error) {
	switch id {
	case ecc.BN254:
		return CurveParameters{
			ID:               ecc.BN254,
			G1Size:           64,
			G2Size:           128,
			G1CompressedSize: 32,
			G2CompressedSize: 64,
		}, nil
	default:
		return CurveParameters{}, fmt.Errorf("%w: %s", setuputils.ErrUnsupportedCurve, id.String())
	}
}

// Parameters describes one ceremony configuration: curve, layout, chunking
// and all the derived buffer sizes.
type Parameters struct {
	Curve            CurveParameters
	ContributionMode ContributionMode
	ProvingSystem    ProvingSystem

	// Size is the log2 of the number of tau powers.
	Size      int
	BatchSize int

	ChunkIndex int
	ChunkSize  int

	// PowersLength is 2^Size, the length of the G2/alpha/beta segments.
	PowersLength int
	// PowersG1Length is 2^(Size+1)-1, the length of the TauG1 segment.
	PowersG1Length int

	// G1ChunkSize is the number of TauG1 elements this configuration covers,
	// OtherChunkSize the number covered in each of the shorter segments.
	G1ChunkSize    int
	OtherChunkSize int

	AccumulatorSize  int
	PublicKeySize    int
	ContributionSize int

	HashSize int
}

// NewFullParameters describes a participant holding the entire accumulator.
func NewFullParameters(curve ecc.ID, system ProvingSystem, size, batchSize int) (*Parameters, error) {
	return newParameters(curve, system, ContributionFull, 0, 0, size, batchSize)
}

// NewChunkedParameters describes a participant holding one chunk of the
// accumulator. chunkSize counts TauG1 elements.
func NewChunkedParameters(curve ecc.ID, system ProvingSystem, size, batchSize, chunkIndex, chunkSize int) (*Parameters, error) {
	return newParameters(curve, system, ContributionChunked, chunkIndex, chunkSize, size, batchSize)
}

func newParameters(curve ecc.ID, system ProvingSystem, mode ContributionMode, chunkIndex, chunkSize, size, batchSize int) (*Parameters, error) {
	if batchSize == 0 {
		return nil, setuputils.ErrBatchSizeZero
	}
	cp, err := NewCurveParameters(curve)
	if err != nil {
		return nil, err
	}

	powersLength := 1 << size
	powersG1Length := (powersLength << 1) - 1

	upperBound := powersG1Length
	if system == Marlin {
		upperBound = powersLength
	}

	var start, end int
	if mode == ContributionChunked {
		if chunkSize <= 0 || chunkIndex < 0 || chunkIndex*chunkSize >= upperBound {
			return nil, fmt.Errorf("%w: chunk %d of size %d against %d powers",
				setuputils.ErrInvalidChunk, chunkIndex, chunkSize, upperBound)
		}
		start = chunkIndex * chunkSize
		end = (chunkIndex + 1) * chunkSize
	} else {
		start = 0
		end = upperBound
	}

	g1ChunkSize := minInt(end, upperBound) - start

	var otherChunkSize int
	if system == Groth16 {
		switch {
		case start >= powersLength:
			otherChunkSize = 0
		case end > powersLength:
			otherChunkSize = powersLength - start
		default:
			otherChunkSize = end - start
		}
	}

	p := &Parameters{
		Curve:            cp,
		ContributionMode: mode,
		ProvingSystem:    system,
		Size:             size,
		BatchSize:        batchSize,
		ChunkIndex:       chunkIndex,
		ChunkSize:        chunkSize,
		PowersLength:     powersLength,
		PowersG1Length:   powersG1Length,
		G1ChunkSize:      g1ChunkSize,
		OtherChunkSize:   otherChunkSize,
		HashSize:         setuputils.HashSize,
	}

	p.PublicKeySize = 3*cp.G2CompressedSize + 6*cp.G1CompressedSize

	isFirstChunk := mode == ContributionFull || chunkIndex == 0
	switch system {
	case Groth16:
		p.AccumulatorSize = g1ChunkSize*cp.G1Size +
			otherChunkSize*(cp.G2Size+2*cp.G1Size) +
			cp.G2Size + p.HashSize
		p.ContributionSize = g1ChunkSize*cp.G1CompressedSize +
			otherChunkSize*(cp.G2CompressedSize+2*cp.G1CompressedSize) +
			cp.G2CompressedSize + p.HashSize + p.PublicKeySize
	case Marlin:
		var extraG1, extraG2 int
		if isFirstChunk {
			extraG1 = 3 + 3*size
			extraG2 = size + 2
		}
		p.AccumulatorSize = g1ChunkSize*cp.G1Size +
			extraG1*cp.G1Size + extraG2*cp.G2Size + p.HashSize
		p.ContributionSize = g1ChunkSize*cp.G1CompressedSize +
			extraG1*cp.G1CompressedSize + extraG2*cp.G2CompressedSize +
			p.HashSize + p.PublicKeySize
	}

	return p, nil
}

// ChunkParameters re-derives the parameters for one chunk of this ceremony.
func (p *Parameters) ChunkParameters(mode ContributionMode, chunkIndex, chunkSize int) (*Parameters, error) {
	return newParameters(p.Curve.ID, p.ProvingSystem, mode, chunkIndex, chunkSize, p.Size, p.BatchSize)
}

// Length returns the expected size of an accumulator buffer, without the
// appended public key.
func (p *Parameters) Length(compression setuputils.UseCompression) int {
	if compression == setuputils.Compressed {
		return p.ContributionSize - p.PublicKeySize
	}
	return p.AccumulatorSize
}

// upperBound is the length of the longest segment this layout tracks.
func (p *Parameters) upperBound() int {
	if p.ProvingSystem == Marlin {
		return p.PowersLength
	}
	return p.PowersG1Length
}

// chunkRange returns the [start, end) window of global element indices this
// configuration covers.
func (p *Parameters) chunkRange() (int, int) {
	if p.ContributionMode == ContributionChunked {
		start := p.ChunkIndex * p.ChunkSize
		return start, minInt((p.ChunkIndex+1)*p.ChunkSize, p.upperBound())
	}
	return 0, p.upperBound()
}

// isFirstChunk reports whether this configuration carries the chunk-0-only
// segments of the Marlin layout.
func (p *Parameters) isFirstChunk() bool {
	return p.ContributionMode == ContributionFull || p.ChunkIndex == 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
