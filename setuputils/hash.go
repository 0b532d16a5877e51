package setuputils

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/crypto/blake2b"
)

// HashSize is the width of the transcript digests chaining contributions.
const HashSize = blake2b.Size

// challengeDST is the domain separation tag for hashing challenges to G2.
var challengeDST = []byte("BN254-POWERS-OF-TAU-CHALLENGE")

// CalculateHash returns the blake2b-512 digest of the buffer.
func CalculateHash(buf []byte) []byte {
	h := blake2b.Sum512(buf)
	return h[:]
}

// BlankHash returns the digest terminating the hash chain at the first
// challenge, the blake2b-512 of the empty string.
func BlankHash() []byte {
	h := blake2b.Sum512(nil)
	return h[:]
}

// HashToG2Challenge derives the deterministic G2 challenge point binding a
// proof-of-knowledge to the transcript. The preimage commits to the previous
// digest, the prover's G1 pair and a per-secret personalization byte.
func HashToG2Challenge(digest []byte, g1s, g1sx *bn254.G1Affine, personalization byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(digest) != HashSize {
		return p, &LengthError{Expected: HashSize, Got: len(digest)}
	}

	h, err := blake2b.New512(nil)
	if err != nil {
		return p, err
	}
	h.Write([]byte{personalization})
	h.Write(digest)
	sBytes := g1s.RawBytes()
	h.Write(sBytes[:])
	sxBytes := g1sx.RawBytes()
	h.Write(sxBytes[:])

	return bn254.HashToG2(h.Sum(nil), challengeDST)
}
