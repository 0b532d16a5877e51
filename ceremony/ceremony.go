// Package ceremony orchestrates rounds of the trusted setup on top of the
// phase1 engines: hash-chained challenge/response pairs, chunk bookkeeping
// and a versioned metadata envelope for coordination.
package ceremony

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/fxamacker/cbor/v2"

	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/phase1"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// FormatVersion is the version of the metadata envelope. Decoding rejects
// envelopes from a different major version.
const FormatVersion = "1.0.0"

// Metadata describes a ceremony so that participants and the coordinator
// agree on its layout.
type Metadata struct {
	Version          string `cbor:"version"`
	Curve            string `cbor:"curve"`
	ProvingSystem    string `cbor:"proving_system"`
	ContributionMode string `cbor:"contribution_mode"`
	Size             int    `cbor:"size"`
	BatchSize        int    `cbor:"batch_size"`
	ChunkSize        int    `cbor:"chunk_size,omitempty"`
	Round            int    `cbor:"round"`
}

// EncodeMetadata serializes the metadata envelope.
func EncodeMetadata(m *Metadata) ([]byte, error) {
	return cbor.Marshal(m)
}

// DecodeMetadata deserializes an envelope, rejecting incompatible format
// versions.
func DecodeMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	got, err := semver.Parse(m.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid format version %q: %w", m.Version, err)
	}
	want := semver.MustParse(FormatVersion)
	if got.Major != want.Major {
		return nil, fmt.Errorf("incompatible format version %s, this build speaks %s", got, want)
	}
	return &m, nil
}

// Parameters rebuilds the phase1 parameters the metadata describes.
func (m *Metadata) Parameters(chunkIndex int) (*phase1.Parameters, error) {
	system, err := phase1.ProvingSystemFromString(m.ProvingSystem)
	if err != nil {
		return nil, err
	}
	mode, err := phase1.ContributionModeFromString(m.ContributionMode)
	if err != nil {
		return nil, err
	}
	var id ecc.ID
	switch m.Curve {
	case ecc.BN254.String():
		id = ecc.BN254
	default:
		return nil, fmt.Errorf("%w: %s", setuputils.ErrUnsupportedCurve, m.Curve)
	}
	if mode == phase1.ContributionChunked {
		return phase1.NewChunkedParameters(id, system, m.Size, m.BatchSize, chunkIndex, m.ChunkSize)
	}
	return phase1.NewFullParameters(id, system, m.Size, m.BatchSize)
}

// Session runs one participant's view of a ceremony.
type Session struct {
	Parameters *phase1.Parameters
	Metadata   Metadata
}

// NewSession wraps parameters into a session with a fresh metadata envelope.
func NewSession(p *phase1.Parameters) *Session {
	return &Session{
		Parameters: p,
		Metadata: Metadata{
			Version:          FormatVersion,
			Curve:            p.Curve.ID.String(),
			ProvingSystem:    p.ProvingSystem.String(),
			ContributionMode: p.ContributionMode.String(),
			Size:             p.Size,
			BatchSize:        p.BatchSize,
			ChunkSize:        p.ChunkSize,
		},
	}
}

// NewChallenge allocates and initializes the genesis challenge, uncompressed,
// chained to the blank digest.
func (s *Session) NewChallenge() ([]byte, error) {
	buf := make([]byte, s.Parameters.AccumulatorSize)
	if err := phase1.Initialization(buf, setuputils.Uncompressed, s.Parameters); err != nil {
		return nil, err
	}
	return buf, nil
}

// Contribute consumes an uncompressed challenge and produces a compressed
// response carrying the public key, with secrets drawn from rng. The private
// key is destroyed before returning.
func (s *Session) Contribute(challenge []byte, rng io.Reader) ([]byte, *phase1.PublicKey, error) {
	p := s.Parameters
	digest := setuputils.CalculateHash(challenge[:p.Length(setuputils.Uncompressed)])

	pub, priv, err := phase1.GenerateKeypair(rng, digest)
	if err != nil {
		return nil, nil, err
	}
	defer priv.Destroy()

	response := make([]byte, p.ContributionSize)
	err = phase1.Computation(
		challenge, response,
		setuputils.Uncompressed, setuputils.Compressed,
		setuputils.CheckNo, setuputils.BatchExpAuto,
		priv, p,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := pub.WriteTo(response[p.ContributionSize-p.PublicKeySize:]); err != nil {
		return nil, nil, err
	}
	return response, pub, nil
}

// VerifyRound checks that response extends challenge: the hash chain links
// them, and the contribution verifies under the embedded public key. It
// returns the next challenge digest on success.
func (s *Session) VerifyRound(challenge, response []byte, subgroupMode setuputils.SubgroupCheckMode) ([]byte, error) {
	log := logger.Logger()
	p := s.Parameters

	digest := setuputils.CalculateHash(challenge[:p.Length(setuputils.Uncompressed)])
	if len(response) < p.ContributionSize {
		return nil, &setuputils.LengthError{Expected: p.ContributionSize, Got: len(response)}
	}
	if !bytes.Equal(response[:p.HashSize], digest) {
		return nil, setuputils.ErrHashChainMismatch
	}

	pub, err := phase1.ReadPublicKey(response[p.ContributionSize-p.PublicKeySize:])
	if err != nil {
		return nil, err
	}

	err = phase1.Verification(
		challenge, response,
		pub, digest,
		setuputils.Uncompressed, setuputils.Compressed,
		setuputils.CheckNo, setuputils.CheckFull,
		subgroupMode, p,
	)
	if err != nil {
		return nil, err
	}

	next := setuputils.CalculateHash(response[:p.Length(setuputils.Compressed)])
	log.Info().Int("round", s.Metadata.Round).Msg("round verified")
	return next, nil
}

// NextChallenge decompresses a verified response into the next round's
// challenge.
func (s *Session) NextChallenge(response []byte) ([]byte, error) {
	p := s.Parameters
	challenge := make([]byte, p.AccumulatorSize)
	if err := phase1.Decompress(response, challenge, setuputils.CheckNo, p); err != nil {
		return nil, err
	}
	// the new challenge chains to the response it came from
	copy(challenge[:p.HashSize], setuputils.CalculateHash(response[:p.Length(setuputils.Compressed)]))
	s.Metadata.Round++
	return challenge, nil
}

// ChunkTracker records which chunks of a round the coordinator has received.
type ChunkTracker struct {
	received *bitset.BitSet
	total    uint
}

// NewChunkTracker sizes a tracker for the ceremony's chunk count.
func NewChunkTracker(p *phase1.Parameters) *ChunkTracker {
	total := uint(p.ChunkCount())
	return &ChunkTracker{received: bitset.New(total), total: total}
}

// Mark records receipt of a chunk.
func (t *ChunkTracker) Mark(chunkIndex int) error {
	if chunkIndex < 0 || uint(chunkIndex) >= t.total {
		return fmt.Errorf("%w: %d of %d", setuputils.ErrInvalidChunk, chunkIndex, t.total)
	}
	t.received.Set(uint(chunkIndex))
	return nil
}

// Complete reports whether every chunk arrived.
func (t *ChunkTracker) Complete() bool {
	return t.received.Count() == t.total
}

// Missing lists the chunks still outstanding.
func (t *ChunkTracker) Missing() []uint {
	missing := make([]uint, 0, t.total-t.received.Count())
	for i := uint(0); i < t.total; i++ {
		if !t.received.Test(i) {
			missing = append(missing, i)
		}
	}
	return missing
}
