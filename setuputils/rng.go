package setuputils

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// seededReader streams a ChaCha20 keystream derived from a seed digest.
type seededReader struct {
	cipher *chacha20.Cipher
}

func (r *seededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// NewSeededRandomSource returns a deterministic random source keyed by the
// blake2b-256 digest of the seed. Two runs with the same seed produce the
// same stream, which is what lets contributions be reproduced for audit.
func NewSeededRandomSource(seed []byte) (io.Reader, error) {
	key := blake2b.Sum256(seed)
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &seededReader{cipher: c}, nil
}

// NewBeaconRandomSource derives a random source from a public beacon value by
// iterating blake2b-256 2^difficulty times, making the final seed expensive
// to grind.
func NewBeaconRandomSource(beacon []byte, difficulty uint) (io.Reader, error) {
	cur := make([]byte, len(beacon))
	copy(cur, beacon)
	for i := uint64(0); i < 1<<difficulty; i++ {
		h := blake2b.Sum256(cur)
		cur = h[:]
	}
	return NewSeededRandomSource(cur)
}

// RandomFr samples a uniform field element from the source.
func RandomFr(rng io.Reader) (fr.Element, error) {
	var e fr.Element
	// 48 bytes keep the modular bias negligible
	buf := make([]byte, 48)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return e, err
	}
	var bi big.Int
	bi.SetBytes(buf)
	e.SetBigInt(&bi)
	return e, nil
}

// RandomNonZeroFr samples a uniform non-zero field element from the source.
func RandomNonZeroFr(rng io.Reader) (fr.Element, error) {
	for {
		e, err := RandomFr(rng)
		if err != nil {
			return e, err
		}
		if !e.IsZero() {
			return e, nil
		}
	}
}
