package phase1

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

func TestFullParametersGroth16(t *testing.T) {
	p := testParameters(t, Groth16, 2, 4)

	require.Equal(t, 4, p.PowersLength)
	require.Equal(t, 7, p.PowersG1Length)
	require.Equal(t, 7, p.G1ChunkSize)
	require.Equal(t, 4, p.OtherChunkSize)

	// hash + 7 tau G1 + 4*(tau G2 + alpha G1 + beta G1) + beta G2
	require.Equal(t, 64+7*64+4*(128+64+64)+128, p.AccumulatorSize)
	require.Equal(t, 3*64+6*32, p.PublicKeySize)
	require.Equal(t, 64+7*32+4*(64+32+32)+64+p.PublicKeySize, p.ContributionSize)

	require.Equal(t, p.AccumulatorSize, p.Length(setuputils.Uncompressed))
	require.Equal(t, p.ContributionSize-p.PublicKeySize, p.Length(setuputils.Compressed))
}

func TestFullParametersMarlin(t *testing.T) {
	p := testParameters(t, Marlin, 2, 4)

	require.Equal(t, 4, p.PowersLength)
	require.Equal(t, 4, p.G1ChunkSize)
	require.Equal(t, 0, p.OtherChunkSize)

	// hash + 4 tau G1 + (3+3*size) alpha G1 + (size+2) tau G2
	require.Equal(t, 64+4*64+9*64+4*128, p.AccumulatorSize)
	require.Equal(t, 64+4*32+9*32+4*64+p.PublicKeySize, p.ContributionSize)
}

func TestChunkedParametersGroth16(t *testing.T) {
	type expectation struct {
		g1Chunk, otherChunk int
	}
	expected := []expectation{
		{3, 3}, // [0,3)
		{3, 1}, // [3,6), shorter segments stop at 4
		{1, 0}, // [6,7)
	}
	for chunk, want := range expected {
		p, err := NewChunkedParameters(ecc.BN254, Groth16, 2, 4, chunk, 3)
		require.NoError(t, err)
		require.Equal(t, want.g1Chunk, p.G1ChunkSize, "chunk %d", chunk)
		require.Equal(t, want.otherChunk, p.OtherChunkSize, "chunk %d", chunk)
		require.Equal(t, 3, p.ChunkCount())
	}
}

func TestChunkedAccumulatorSizes(t *testing.T) {
	full := testParameters(t, Groth16, 2, 4)

	var total int
	for chunk := 0; chunk < 3; chunk++ {
		p, err := NewChunkedParameters(ecc.BN254, Groth16, 2, 4, chunk, 3)
		require.NoError(t, err)
		total += p.AccumulatorSize - p.HashSize - p.Curve.G2Size
	}
	// chunk buffers each repeat the digest and the beta G2 element
	require.Equal(t, full.AccumulatorSize-full.HashSize-full.Curve.G2Size, total)
}

func TestParametersRejectZeroBatch(t *testing.T) {
	_, err := NewFullParameters(ecc.BN254, Groth16, 2, 0)
	require.ErrorIs(t, err, setuputils.ErrBatchSizeZero)
}

func TestParametersRejectBadChunk(t *testing.T) {
	_, err := NewChunkedParameters(ecc.BN254, Groth16, 2, 4, 9, 3)
	require.ErrorIs(t, err, setuputils.ErrInvalidChunk)

	_, err = NewChunkedParameters(ecc.BN254, Groth16, 2, 4, 0, 0)
	require.ErrorIs(t, err, setuputils.ErrInvalidChunk)
}

func TestParametersRejectUnsupportedCurve(t *testing.T) {
	_, err := NewFullParameters(ecc.BLS12_381, Groth16, 2, 4)
	require.ErrorIs(t, err, setuputils.ErrUnsupportedCurve)
}

func TestEnumParsing(t *testing.T) {
	mode, err := ContributionModeFromString("chunked")
	require.NoError(t, err)
	require.Equal(t, ContributionChunked, mode)
	_, err = ContributionModeFromString("partial")
	require.Error(t, err)

	system, err := ProvingSystemFromString("marlin")
	require.NoError(t, err)
	require.Equal(t, Marlin, system)
	_, err = ProvingSystemFromString("plonk")
	require.Error(t, err)
}
