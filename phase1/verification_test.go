package phase1

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/require"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

func verifyRound(p *Parameters, challenge, response []byte, pub *PublicKey) error {
	digest := setuputils.CalculateHash(challenge[:p.Length(setuputils.Uncompressed)])
	return Verification(
		challenge, response,
		pub, digest,
		setuputils.Uncompressed, setuputils.Compressed,
		setuputils.CheckNo, setuputils.CheckFull,
		setuputils.SubgroupCheckAuto, p,
	)
}

func TestVerificationAcceptsValidRound(t *testing.T) {
	for _, system := range []ProvingSystem{Groth16, Marlin} {
		p := testParameters(t, system, 3, 4)
		challenge := newChallenge(t, p)
		response, pub := contributeOnce(t, p, challenge, "valid round")
		require.NoError(t, verifyRound(p, challenge, response, pub), system)
	}
}

func TestVerificationSecondRound(t *testing.T) {
	p := testParameters(t, Groth16, 3, 4)
	challenge := newChallenge(t, p)
	response, pub := contributeOnce(t, p, challenge, "first")
	require.NoError(t, verifyRound(p, challenge, response, pub))

	next := make([]byte, p.AccumulatorSize)
	require.NoError(t, Decompress(response, next, setuputils.CheckNo, p))

	response2, pub2 := contributeOnce(t, p, next, "second")
	require.NoError(t, verifyRound(p, next, response2, pub2))

	// the first key does not verify the second round
	require.Error(t, verifyRound(p, next, response2, pub))
}

func TestVerificationRejectsWrongDigest(t *testing.T) {
	p := testParameters(t, Groth16, 3, 4)
	challenge := newChallenge(t, p)
	response, pub := contributeOnce(t, p, challenge, "digest")

	wrongDigest := setuputils.CalculateHash([]byte("not the challenge"))
	err := Verification(
		challenge, response,
		pub, wrongDigest,
		setuputils.Uncompressed, setuputils.Compressed,
		setuputils.CheckNo, setuputils.CheckFull,
		setuputils.SubgroupCheckAuto, p,
	)
	var ratioErr *setuputils.RatioError
	require.ErrorAs(t, err, &ratioErr)
}

func TestVerificationRejectsCorruptElement(t *testing.T) {
	p := testParameters(t, Groth16, 2, 2)
	challenge := newChallenge(t, p)
	response, pub := contributeOnce(t, p, challenge, "corrupt")

	// flip a byte inside tau G1: either the decode or the update ratio breaks
	corrupted := make([]byte, len(response))
	copy(corrupted, response)
	corrupted[p.HashSize+p.Curve.G1CompressedSize+7] ^= 0xff
	require.Error(t, verifyRound(p, challenge, corrupted, pub))
}

func TestVerificationRejectsNonGeneratorAnchor(t *testing.T) {
	p := testParameters(t, Groth16, 2, 2)
	challenge := newChallenge(t, p)
	response, pub := contributeOnce(t, p, challenge, "anchor")

	// a valid point that is not the generator
	_, _, g1, _ := bn254.Generators()
	var notGen bn254.G1Affine
	notGen.Double(&g1)
	require.NoError(t, setuputils.WriteG1(response[p.HashSize:], &notGen, setuputils.Compressed))

	err := verifyRound(p, challenge, response, pub)
	var genErr *setuputils.GeneratorError
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, setuputils.TauG1, genErr.Element)
}

func TestVerificationRejectsForeignKey(t *testing.T) {
	p := testParameters(t, Groth16, 3, 4)
	challenge := newChallenge(t, p)
	response, _ := contributeOnce(t, p, challenge, "own key")
	_, otherPub := contributeOnce(t, p, challenge, "other key")

	require.Error(t, verifyRound(p, challenge, response, otherPub))
}

func TestAggregateVerificationFullAccumulator(t *testing.T) {
	for _, system := range []ProvingSystem{Groth16, Marlin} {
		p := testParameters(t, system, 3, 4)
		challenge := newChallenge(t, p)
		response, _ := contributeOnce(t, p, challenge, "aggregate full")

		next := make([]byte, p.AccumulatorSize)
		require.NoError(t, Decompress(response, next, setuputils.CheckNo, p))

		require.NoError(t, AggregateVerification(
			next, setuputils.Uncompressed,
			setuputils.CheckFull, setuputils.SubgroupCheckAuto, p,
		), system)
	}
}

func TestAggregateVerificationRejectsSwappedPowers(t *testing.T) {
	p := testParameters(t, Groth16, 3, 4)
	challenge := newChallenge(t, p)
	response, _ := contributeOnce(t, p, challenge, "aggregate swap")

	next := make([]byte, p.AccumulatorSize)
	require.NoError(t, Decompress(response, next, setuputils.CheckNo, p))

	// swap tau^3 and tau^5: every point stays valid, the progression breaks
	g1 := p.Curve.G1Size
	a := next[p.HashSize+3*g1 : p.HashSize+4*g1]
	b := next[p.HashSize+5*g1 : p.HashSize+6*g1]
	tmp := make([]byte, g1)
	copy(tmp, a)
	copy(a, b)
	copy(b, tmp)

	err := AggregateVerification(
		next, setuputils.Uncompressed,
		setuputils.CheckFull, setuputils.SubgroupCheckAuto, p,
	)
	var ratioErr *setuputils.RatioError
	require.ErrorAs(t, err, &ratioErr)
}
