package setuputils

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func ratioFixture(t *testing.T) (x fr.Element, g1 bn254.G1Affine, g1x bn254.G1Affine, g2 bn254.G2Affine, g2x bn254.G2Affine) {
	t.Helper()
	_, err := x.SetRandom()
	require.NoError(t, err)
	var bi big.Int
	x.BigInt(&bi)
	_, _, g1, g2 = bn254.Generators()
	g1x.ScalarMultiplication(&g1, &bi)
	g2x.ScalarMultiplication(&g2, &bi)
	return
}

func TestCheckSameRatio(t *testing.T) {
	_, g1, g1x, g2, g2x := ratioFixture(t)

	require.NoError(t, CheckSameRatio([2]bn254.G1Affine{g1, g1x}, [2]bn254.G2Affine{g2, g2x}, "tau"))

	var g2xx bn254.G2Affine
	g2xx.Add(&g2x, &g2x)
	err := CheckSameRatio([2]bn254.G1Affine{g1, g1x}, [2]bn254.G2Affine{g2, g2xx}, "tau")
	var ratioErr *RatioError
	require.ErrorAs(t, err, &ratioErr)
	require.Equal(t, "tau", ratioErr.Context)
}

func TestPowerPairs(t *testing.T) {
	x, g1, _, g2, g2x := ratioFixture(t)

	const n = 8
	powers := GeneratePowers(&x, 0, n)
	points := make([]bn254.G1Affine, n)
	var bi big.Int
	for i := range points {
		points[i].ScalarMultiplication(&g1, powers[i].BigInt(&bi))
	}

	pair, err := PowerPairsG1(points)
	require.NoError(t, err)
	require.NoError(t, CheckSameRatio(pair, [2]bn254.G2Affine{g2, g2x}, "powers"))

	// breaking a single power must break the merged ratio
	points[3].Add(&points[3], &g1)
	pair, err = PowerPairsG1(points)
	require.NoError(t, err)
	require.Error(t, CheckSameRatio(pair, [2]bn254.G2Affine{g2, g2x}, "powers"))
}

func TestPowerPairsG2(t *testing.T) {
	x, g1, g1x, g2, _ := ratioFixture(t)

	const n = 6
	powers := GeneratePowers(&x, 0, n)
	points := make([]bn254.G2Affine, n)
	var bi big.Int
	for i := range points {
		points[i].ScalarMultiplication(&g2, powers[i].BigInt(&bi))
	}

	pair, err := PowerPairsG2(points)
	require.NoError(t, err)
	require.NoError(t, CheckSameRatio([2]bn254.G1Affine{g1, g1x}, pair, "powers"))
}

func TestPowerPairsTooShort(t *testing.T) {
	_, _, g1, _ := bn254.Generators()
	_, err := PowerPairsG1([]bn254.G1Affine{g1})
	var lenErr *LengthError
	require.ErrorAs(t, err, &lenErr)
}
