package ceremony

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"

	"github.com/kobigurk/phase2-bn254-sub000/phase1"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	p, err := phase1.NewFullParameters(ecc.BN254, phase1.Groth16, 3, 4)
	require.NoError(t, err)
	return NewSession(p)
}

func TestMetadataRoundTrip(t *testing.T) {
	s := testSession(t)
	s.Metadata.Round = 3

	data, err := EncodeMetadata(&s.Metadata)
	require.NoError(t, err)

	m, err := DecodeMetadata(data)
	require.NoError(t, err)
	require.Equal(t, s.Metadata, *m)

	p, err := m.Parameters(0)
	require.NoError(t, err)
	require.Equal(t, s.Parameters.AccumulatorSize, p.AccumulatorSize)
}

func TestMetadataRejectsIncompatibleVersion(t *testing.T) {
	s := testSession(t)
	s.Metadata.Version = "2.0.0"

	data, err := EncodeMetadata(&s.Metadata)
	require.NoError(t, err)
	_, err = DecodeMetadata(data)
	require.ErrorContains(t, err, "incompatible format version")

	s.Metadata.Version = "not-a-version"
	data, err = EncodeMetadata(&s.Metadata)
	require.NoError(t, err)
	_, err = DecodeMetadata(data)
	require.Error(t, err)
}

func TestCeremonyRounds(t *testing.T) {
	s := testSession(t)

	challenge, err := s.NewChallenge()
	require.NoError(t, err)

	rng, err := setuputils.NewSeededRandomSource([]byte("participant one"))
	require.NoError(t, err)
	response, _, err := s.Contribute(challenge, rng)
	require.NoError(t, err)

	_, err = s.VerifyRound(challenge, response, setuputils.SubgroupCheckAuto)
	require.NoError(t, err)

	next, err := s.NextChallenge(response)
	require.NoError(t, err)
	require.Equal(t, 1, s.Metadata.Round)

	rng2, err := setuputils.NewSeededRandomSource([]byte("participant two"))
	require.NoError(t, err)
	response2, _, err := s.Contribute(next, rng2)
	require.NoError(t, err)
	_, err = s.VerifyRound(next, response2, setuputils.SubgroupCheckAuto)
	require.NoError(t, err)
}

func TestVerifyRoundRejectsBrokenChain(t *testing.T) {
	s := testSession(t)

	challenge, err := s.NewChallenge()
	require.NoError(t, err)
	rng, err := setuputils.NewSeededRandomSource([]byte("chain"))
	require.NoError(t, err)
	response, _, err := s.Contribute(challenge, rng)
	require.NoError(t, err)

	response[3] ^= 0xff
	_, err = s.VerifyRound(challenge, response, setuputils.SubgroupCheckAuto)
	require.ErrorIs(t, err, setuputils.ErrHashChainMismatch)
}

func TestContributeDestroysKey(t *testing.T) {
	s := testSession(t)
	challenge, err := s.NewChallenge()
	require.NoError(t, err)
	rng, err := setuputils.NewSeededRandomSource([]byte("destroy"))
	require.NoError(t, err)

	_, pub, err := s.Contribute(challenge, rng)
	require.NoError(t, err)
	require.NotNil(t, pub)
	require.False(t, pub.TauG1[0].IsInfinity())
}

func TestChunkTracker(t *testing.T) {
	p, err := phase1.NewChunkedParameters(ecc.BN254, phase1.Groth16, 3, 4, 0, 5)
	require.NoError(t, err)

	tracker := NewChunkTracker(p)
	require.False(t, tracker.Complete())
	require.Len(t, tracker.Missing(), 3)

	require.NoError(t, tracker.Mark(0))
	require.NoError(t, tracker.Mark(2))
	require.Equal(t, []uint{1}, tracker.Missing())

	require.Error(t, tracker.Mark(5))

	require.NoError(t, tracker.Mark(1))
	require.True(t, tracker.Complete())
	require.Empty(t, tracker.Missing())
}
