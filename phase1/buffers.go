package phase1

import (
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

func (p *Parameters) g1Size(c setuputils.UseCompression) int {
	if c == setuputils.Compressed {
		return p.Curve.G1CompressedSize
	}
	return p.Curve.G1Size
}

func (p *Parameters) g2Size(c setuputils.UseCompression) int {
	if c == setuputils.Compressed {
		return p.Curve.G2CompressedSize
	}
	return p.Curve.G2Size
}

// fullLength is the size of a full-mode accumulator buffer, regardless of the
// chunking of p itself.
func (p *Parameters) fullLength(c setuputils.UseCompression) int {
	g1 := p.g1Size(c)
	g2 := p.g2Size(c)
	if p.ProvingSystem == Marlin {
		return p.HashSize + p.PowersLength*g1 + (p.Size+2)*g2 + (3+3*p.Size)*g1
	}
	return p.HashSize + p.PowersG1Length*g1 + p.PowersLength*(g2+2*g1) + g2
}

// splitBuf carries the per-segment windows of an accumulator buffer. Segments
// absent from the layout are empty.
type splitBuf struct {
	tauG1   []byte
	tauG2   []byte
	alphaG1 []byte
	betaG1  []byte
	betaG2  []byte
}

// split views an accumulator buffer laid out for p, skipping the leading
// digest. The buffer may be longer than the layout (a public key may follow).
func split(buffer []byte, p *Parameters, c setuputils.UseCompression) (*splitBuf, error) {
	if required := p.Length(c); len(buffer) < required {
		return nil, &setuputils.LengthError{Expected: required, Got: len(buffer)}
	}

	g1 := p.g1Size(c)
	g2 := p.g2Size(c)
	off := p.HashSize

	take := func(n int) []byte {
		s := buffer[off : off+n]
		off += n
		return s
	}

	out := &splitBuf{}
	out.tauG1 = take(p.G1ChunkSize * g1)
	if p.ProvingSystem == Marlin {
		if p.isFirstChunk() {
			out.tauG2 = take((p.Size + 2) * g2)
			out.alphaG1 = take((3 + 3*p.Size) * g1)
		}
		return out, nil
	}
	out.tauG2 = take(p.OtherChunkSize * g2)
	out.alphaG1 = take(p.OtherChunkSize * g1)
	out.betaG1 = take(p.OtherChunkSize * g1)
	out.betaG2 = take(g2)
	return out, nil
}

// splitAtChunk views the chunk window [chunkIndex*chunkSize, ...) of a
// full-mode accumulator buffer. The Marlin chunk-0 segments are returned
// whole, mirroring how a chunked buffer packs them.
func splitAtChunk(buffer []byte, p *Parameters, c setuputils.UseCompression, chunkIndex, chunkSize int) (*splitBuf, error) {
	if required := p.fullLength(c); len(buffer) < required {
		return nil, &setuputils.LengthError{Expected: required, Got: len(buffer)}
	}

	g1 := p.g1Size(c)
	g2 := p.g2Size(c)

	start := chunkIndex * chunkSize
	end := minInt((chunkIndex+1)*chunkSize, p.upperBound())
	if start >= end {
		return nil, setuputils.ErrInvalidChunk
	}
	off := p.HashSize
	seg := func(total, elem int) []byte {
		s := buffer[off : off+total*elem]
		off += total * elem
		return s
	}

	out := &splitBuf{}
	if p.ProvingSystem == Marlin {
		tauG1 := seg(p.PowersLength, g1)
		out.tauG1 = tauG1[start*g1 : end*g1]
		out.tauG2 = seg(p.Size+2, g2)
		out.alphaG1 = seg(3+3*p.Size, g1)
		return out, nil
	}

	var otherChunk int
	switch {
	case start >= p.PowersLength:
		otherChunk = 0
	case end > p.PowersLength:
		otherChunk = p.PowersLength - start
	default:
		otherChunk = end - start
	}

	tauG1 := seg(p.PowersG1Length, g1)
	out.tauG1 = tauG1[start*g1 : end*g1]
	tauG2 := seg(p.PowersLength, g2)
	alphaG1 := seg(p.PowersLength, g1)
	betaG1 := seg(p.PowersLength, g1)
	if otherChunk > 0 {
		out.tauG2 = tauG2[start*g2 : (start+otherChunk)*g2]
		out.alphaG1 = alphaG1[start*g1 : (start+otherChunk)*g1]
		out.betaG1 = betaG1[start*g1 : (start+otherChunk)*g1]
	}
	out.betaG2 = seg(1, g2)
	return out, nil
}

// iterChunk walks the element range of p in overlapping windows of BatchSize
// elements. Consecutive windows share one element so that ratio checks can
// cross window boundaries.
func iterChunk(p *Parameters, action func(start, end int) error) error {
	lo, hi := p.chunkRange()
	step := p.BatchSize - 1
	if step == 0 {
		step = 1
	}
	for s := lo; s < hi; s += step {
		e := s + step - 1
		if e > hi-1 {
			e = hi - 1
		}
		if s == e {
			if s >= hi-1 {
				if hi == lo+1 {
					if err := action(s, s+1); err != nil {
						return err
					}
				}
				continue
			}
			if err := action(s, s+2); err != nil {
				return err
			}
			continue
		}
		end := e + 2
		if e >= hi-1 {
			end = e + 1
		}
		if err := action(s, end); err != nil {
			return err
		}
	}
	return nil
}
