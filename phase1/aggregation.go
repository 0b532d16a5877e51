package phase1

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// AggregationInput is one chunk contribution to merge into a full accumulator.
type AggregationInput struct {
	Buffer      []byte
	Compression setuputils.UseCompression
}

// ChunkCount returns how many chunks of ChunkSize cover the accumulator.
func (p *Parameters) ChunkCount() int {
	return (p.upperBound() + p.ChunkSize - 1) / p.ChunkSize
}

// copyBatchG1 re-encodes count points from src into dst. When both sides use
// the same encoding the bytes move untouched.
func copyBatchG1(dst, src []byte, count int, cDst, cSrc setuputils.UseCompression) error {
	if cSrc == cDst {
		n := count * setuputils.BufferSizeG1(cSrc)
		if len(src) < n || len(dst) < n {
			return &setuputils.LengthError{Expected: n, Got: minInt(len(src), len(dst))}
		}
		copy(dst[:n], src[:n])
		return nil
	}
	points, err := setuputils.ReadBatchG1(src, count, cSrc, setuputils.CheckNo)
	if err != nil {
		return err
	}
	return setuputils.WriteBatchG1(dst, points, cDst)
}

func copyBatchG2(dst, src []byte, count int, cDst, cSrc setuputils.UseCompression) error {
	if cSrc == cDst {
		n := count * setuputils.BufferSizeG2(cSrc)
		if len(src) < n || len(dst) < n {
			return &setuputils.LengthError{Expected: n, Got: minInt(len(src), len(dst))}
		}
		copy(dst[:n], src[:n])
		return nil
	}
	points, err := setuputils.ReadBatchG2(src, count, cSrc, setuputils.CheckNo)
	if err != nil {
		return err
	}
	return setuputils.WriteBatchG2(dst, points, cDst)
}

// Aggregation assembles the chunk contributions into one full accumulator
// buffer. Point validity is not checked here; run AggregateVerification on
// the result.
func Aggregation(inputs []AggregationInput, output []byte, compressed setuputils.UseCompression, p *Parameters) error {
	log := logger.Logger()

	if p.ContributionMode != ContributionChunked {
		return fmt.Errorf("%w: aggregation needs chunked parameters", setuputils.ErrInvalidChunk)
	}
	if len(inputs) != p.ChunkCount() {
		return fmt.Errorf("%w: got %d chunks, want %d", setuputils.ErrInvalidChunk, len(inputs), p.ChunkCount())
	}

	copy(output[:p.HashSize], inputs[0].Buffer[:p.HashSize])

	var g errgroup.Group
	for i := range inputs {
		chunkIndex := i
		input := inputs[i]
		g.Go(func() error {
			cp, err := p.ChunkParameters(ContributionChunked, chunkIndex, p.ChunkSize)
			if err != nil {
				return err
			}
			in, err := split(input.Buffer, cp, input.Compression)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunkIndex, err)
			}
			out, err := splitAtChunk(output, cp, compressed, chunkIndex, p.ChunkSize)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunkIndex, err)
			}

			if err := copyBatchG1(out.tauG1, in.tauG1, cp.G1ChunkSize, compressed, input.Compression); err != nil {
				return fmt.Errorf("chunk %d tau G1: %w", chunkIndex, err)
			}

			if cp.ProvingSystem == Marlin {
				if chunkIndex != 0 {
					return nil
				}
				if err := copyBatchG2(out.tauG2, in.tauG2, cp.Size+2, compressed, input.Compression); err != nil {
					return fmt.Errorf("chunk %d tau G2: %w", chunkIndex, err)
				}
				return copyBatchG1(out.alphaG1, in.alphaG1, 3+3*cp.Size, compressed, input.Compression)
			}

			if cp.OtherChunkSize > 0 {
				if err := copyBatchG2(out.tauG2, in.tauG2, cp.OtherChunkSize, compressed, input.Compression); err != nil {
					return fmt.Errorf("chunk %d tau G2: %w", chunkIndex, err)
				}
				if err := copyBatchG1(out.alphaG1, in.alphaG1, cp.OtherChunkSize, compressed, input.Compression); err != nil {
					return fmt.Errorf("chunk %d alpha G1: %w", chunkIndex, err)
				}
				if err := copyBatchG1(out.betaG1, in.betaG1, cp.OtherChunkSize, compressed, input.Compression); err != nil {
					return fmt.Errorf("chunk %d beta G1: %w", chunkIndex, err)
				}
			}
			if chunkIndex == 0 {
				if err := copyBatchG2(out.betaG2, in.betaG2, 1, compressed, input.Compression); err != nil {
					return fmt.Errorf("chunk %d beta G2: %w", chunkIndex, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Int("chunks", len(inputs)).Msg("chunks aggregated")
	return nil
}

// Split is the inverse of Aggregation: it carves a full accumulator into
// per-chunk buffers so the next round can be contributed chunk by chunk.
func Split(input []byte, compressedInput setuputils.UseCompression, outputs [][]byte, compressedOutput setuputils.UseCompression, p *Parameters) error {
	log := logger.Logger()

	if p.ContributionMode != ContributionChunked {
		return fmt.Errorf("%w: split needs chunked parameters", setuputils.ErrInvalidChunk)
	}
	if len(outputs) != p.ChunkCount() {
		return fmt.Errorf("%w: got %d chunk buffers, want %d", setuputils.ErrInvalidChunk, len(outputs), p.ChunkCount())
	}

	var g errgroup.Group
	for i := range outputs {
		chunkIndex := i
		output := outputs[i]
		g.Go(func() error {
			cp, err := p.ChunkParameters(ContributionChunked, chunkIndex, p.ChunkSize)
			if err != nil {
				return err
			}
			in, err := splitAtChunk(input, cp, compressedInput, chunkIndex, p.ChunkSize)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunkIndex, err)
			}
			out, err := split(output, cp, compressedOutput)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunkIndex, err)
			}

			copy(output[:cp.HashSize], input[:cp.HashSize])

			if err := copyBatchG1(out.tauG1, in.tauG1, cp.G1ChunkSize, compressedOutput, compressedInput); err != nil {
				return fmt.Errorf("chunk %d tau G1: %w", chunkIndex, err)
			}

			if cp.ProvingSystem == Marlin {
				if chunkIndex != 0 {
					return nil
				}
				if err := copyBatchG2(out.tauG2, in.tauG2, cp.Size+2, compressedOutput, compressedInput); err != nil {
					return fmt.Errorf("chunk %d tau G2: %w", chunkIndex, err)
				}
				return copyBatchG1(out.alphaG1, in.alphaG1, 3+3*cp.Size, compressedOutput, compressedInput)
			}

			if cp.OtherChunkSize > 0 {
				if err := copyBatchG2(out.tauG2, in.tauG2, cp.OtherChunkSize, compressedOutput, compressedInput); err != nil {
					return fmt.Errorf("chunk %d tau G2: %w", chunkIndex, err)
				}
				if err := copyBatchG1(out.alphaG1, in.alphaG1, cp.OtherChunkSize, compressedOutput, compressedInput); err != nil {
					return fmt.Errorf("chunk %d alpha G1: %w", chunkIndex, err)
				}
				if err := copyBatchG1(out.betaG1, in.betaG1, cp.OtherChunkSize, compressedOutput, compressedInput); err != nil {
					return fmt.Errorf("chunk %d beta G1: %w", chunkIndex, err)
				}
			}
			// every chunk buffer carries the beta G2 element
			return copyBatchG2(out.betaG2, in.betaG2, 1, compressedOutput, compressedInput)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Int("chunks", len(outputs)).Msg("accumulator split into chunks")
	return nil
}
