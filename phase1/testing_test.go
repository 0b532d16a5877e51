package phase1

import (
	"io"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

func testParameters(t *testing.T, system ProvingSystem, size, batch int) *Parameters {
	t.Helper()
	p, err := NewFullParameters(ecc.BN254, system, size, batch)
	require.NoError(t, err)
	return p
}

func testRng(t *testing.T, seed string) io.Reader {
	t.Helper()
	rng, err := setuputils.NewSeededRandomSource([]byte(seed))
	require.NoError(t, err)
	return rng
}

func newChallenge(t *testing.T, p *Parameters) []byte {
	t.Helper()
	buf := make([]byte, p.AccumulatorSize)
	require.NoError(t, Initialization(buf, setuputils.Uncompressed, p))
	return buf
}

// contributeOnce applies a seeded contribution on top of an uncompressed
// challenge and returns the compressed response with the key embedded. The
// secrets depend only on the seed, so the same seed applied to two chunks of
// one round reproduces the same update.
func contributeOnce(t *testing.T, p *Parameters, challenge []byte, seed string) ([]byte, *PublicKey) {
	t.Helper()
	digest := setuputils.CalculateHash(challenge[:p.Length(setuputils.Uncompressed)])

	pub, priv, err := GenerateKeypair(testRng(t, seed), digest)
	require.NoError(t, err)
	defer priv.Destroy()

	response := make([]byte, p.ContributionSize)
	require.NoError(t, Computation(
		challenge, response,
		setuputils.Uncompressed, setuputils.Compressed,
		setuputils.CheckNo, setuputils.BatchExpAuto,
		priv, p,
	))
	require.NoError(t, pub.WriteTo(response[p.ContributionSize-p.PublicKeySize:]))
	return response, pub
}

// contributeKeeping is contributeOnce without destroying the private key, for
// tests that recompute the expected accumulator by hand.
func contributeKeeping(t *testing.T, p *Parameters, challenge []byte, seed string) ([]byte, *PublicKey, *PrivateKey) {
	t.Helper()
	digest := setuputils.CalculateHash(challenge[:p.Length(setuputils.Uncompressed)])

	pub, priv, err := GenerateKeypair(testRng(t, seed), digest)
	require.NoError(t, err)

	response := make([]byte, p.ContributionSize)
	require.NoError(t, Computation(
		challenge, response,
		setuputils.Uncompressed, setuputils.Compressed,
		setuputils.CheckNo, setuputils.BatchExpAuto,
		priv, p,
	))
	require.NoError(t, pub.WriteTo(response[p.ContributionSize-p.PublicKeySize:]))
	return response, pub, priv
}
