package phase1

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

func TestComputationGroth16(t *testing.T) {
	p := testParameters(t, Groth16, 3, 4)
	challenge := newChallenge(t, p)
	response, _, priv := contributeKeeping(t, p, challenge, "groth16 computation")
	defer priv.Destroy()

	acc, err := Deserialize(response, setuputils.Compressed, setuputils.CheckFull, p)
	require.NoError(t, err)

	_, _, g1, g2 := bn254.Generators()
	var bi big.Int

	for i := 0; i < p.PowersG1Length; i++ {
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(int64(i)))
		var want bn254.G1Affine
		want.ScalarMultiplication(&g1, s.BigInt(&bi))
		require.True(t, acc.TauPowersG1[i].Equal(&want), "tau g1 power %d", i)
	}
	for i := 0; i < p.PowersLength; i++ {
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(int64(i)))

		var wantG2 bn254.G2Affine
		wantG2.ScalarMultiplication(&g2, s.BigInt(&bi))
		require.True(t, acc.TauPowersG2[i].Equal(&wantG2), "tau g2 power %d", i)

		var sAlpha, sBeta fr.Element
		sAlpha.Mul(&s, &priv.Alpha)
		sBeta.Mul(&s, &priv.Beta)
		var wantAlpha, wantBeta bn254.G1Affine
		wantAlpha.ScalarMultiplication(&g1, sAlpha.BigInt(&bi))
		wantBeta.ScalarMultiplication(&g1, sBeta.BigInt(&bi))
		require.True(t, acc.AlphaTauPowersG1[i].Equal(&wantAlpha), "alpha power %d", i)
		require.True(t, acc.BetaTauPowersG1[i].Equal(&wantBeta), "beta power %d", i)
	}

	var wantBetaG2 bn254.G2Affine
	wantBetaG2.ScalarMultiplication(&g2, priv.Beta.BigInt(&bi))
	require.True(t, acc.BetaG2.Equal(&wantBetaG2))

	// the response is chained to the challenge
	require.Equal(t, setuputils.CalculateHash(challenge), response[:p.HashSize])
}

func TestComputationMarlin(t *testing.T) {
	p := testParameters(t, Marlin, 3, 4)
	challenge := newChallenge(t, p)
	response, _, priv := contributeKeeping(t, p, challenge, "marlin computation")
	defer priv.Destroy()

	acc, err := Deserialize(response, setuputils.Compressed, setuputils.CheckFull, p)
	require.NoError(t, err)

	_, _, g1, g2 := bn254.Generators()
	var bi big.Int

	for i := 0; i < p.PowersLength; i++ {
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(int64(i)))
		var want bn254.G1Affine
		want.ScalarMultiplication(&g1, s.BigInt(&bi))
		require.True(t, acc.TauPowersG1[i].Equal(&want), "tau g1 power %d", i)
	}

	// tau G2 head holds tau^0, tau^1
	for i := 0; i < 2; i++ {
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(int64(i)))
		var want bn254.G2Affine
		want.ScalarMultiplication(&g2, s.BigInt(&bi))
		require.True(t, acc.TauPowersG2[i].Equal(&want), "tau g2 power %d", i)
	}
	// then the shifted inverse powers for degree enforcement
	for i := 0; i < p.Size; i++ {
		exp := int64(p.PowersLength - 1 - (1 << i) + 2)
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(exp))
		s.Inverse(&s)
		var want bn254.G2Affine
		want.ScalarMultiplication(&g2, s.BigInt(&bi))
		require.True(t, acc.TauPowersG2[2+i].Equal(&want), "inverse degree power %d", i)
	}

	// alpha head holds alpha * (1, tau, tau^2)
	for i := 0; i < 3; i++ {
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(int64(i)))
		s.Mul(&s, &priv.Alpha)
		var want bn254.G1Affine
		want.ScalarMultiplication(&g1, s.BigInt(&bi))
		require.True(t, acc.AlphaTauPowersG1[i].Equal(&want), "alpha head %d", i)
	}
	// then alpha * tau^exp_i * (1, tau, tau^2) per degree bound
	for i := 0; i < p.Size; i++ {
		exp := int64(p.PowersLength - 1 - (1 << i) + 2)
		var base fr.Element
		base.Exp(priv.Tau, big.NewInt(exp))
		base.Mul(&base, &priv.Alpha)
		for j := 0; j < 3; j++ {
			var s fr.Element
			s.Exp(priv.Tau, big.NewInt(int64(j)))
			s.Mul(&s, &base)
			var want bn254.G1Affine
			want.ScalarMultiplication(&g1, s.BigInt(&bi))
			require.True(t, acc.AlphaTauPowersG1[3+3*i+j].Equal(&want), "alpha triple %d/%d", i, j)
		}
	}
}

func TestComputationDeterministic(t *testing.T) {
	p := testParameters(t, Groth16, 2, 2)
	challenge := newChallenge(t, p)

	r1, _ := contributeOnce(t, p, challenge, "same seed")
	r2, _ := contributeOnce(t, p, challenge, "same seed")
	require.Equal(t, r1, r2)

	r3, _ := contributeOnce(t, p, challenge, "different seed")
	require.NotEqual(t, r1, r3)
}

func TestComputationBatchSizes(t *testing.T) {
	// window iteration must cover the range for awkward batch sizes too
	for _, batch := range []int{2, 3, 7, 64} {
		p := testParameters(t, Groth16, 3, batch)
		challenge := newChallenge(t, p)
		response, _, priv := contributeKeeping(t, p, challenge, "batch sweep")

		acc, err := Deserialize(response, setuputils.Compressed, setuputils.CheckFull, p)
		require.NoError(t, err)

		var bi big.Int
		var s fr.Element
		s.Exp(priv.Tau, big.NewInt(int64(p.PowersG1Length-1)))
		_, _, g1, _ := bn254.Generators()
		var want bn254.G1Affine
		want.ScalarMultiplication(&g1, s.BigInt(&bi))
		require.True(t, acc.TauPowersG1[p.PowersG1Length-1].Equal(&want), "batch %d", batch)
		priv.Destroy()
	}
}
