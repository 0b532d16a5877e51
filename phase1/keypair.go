package phase1

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// Domain separation bytes binding each proof-of-knowledge to its secret.
const (
	personalizationTau   byte = 0
	personalizationAlpha byte = 1
	personalizationBeta  byte = 2
)

// PublicKey is the proof of knowledge of a contribution. For each secret x it
// carries a random-base pair (g^s, g^(s*x)) and the transcript challenge
// raised to x.
type PublicKey struct {
	TauG1   [2]bn254.G1Affine
	AlphaG1 [2]bn254.G1Affine
	BetaG1  [2]bn254.G1Affine
	TauG2   bn254.G2Affine
	AlphaG2 bn254.G2Affine
	BetaG2  bn254.G2Affine
}

// PrivateKey holds the toxic waste of one contribution. Call Destroy as soon
// as the contribution is written out.
type PrivateKey struct {
	Tau   fr.Element
	Alpha fr.Element
	Beta  fr.Element
}

// Destroy zeroizes the secrets.
func (k *PrivateKey) Destroy() {
	k.Tau.SetZero()
	k.Alpha.SetZero()
	k.Beta.SetZero()
}

// GenerateKeypair samples the three contribution secrets from rng and builds
// the proof of knowledge bound to the previous transcript digest.
func GenerateKeypair(rng io.Reader, digest []byte) (*PublicKey, *PrivateKey, error) {
	if len(digest) != setuputils.HashSize {
		return nil, nil, &setuputils.LengthError{Expected: setuputils.HashSize, Got: len(digest)}
	}

	priv := &PrivateKey{}
	pub := &PublicKey{}

	var err error
	if priv.Tau, err = setuputils.RandomNonZeroFr(rng); err != nil {
		return nil, nil, err
	}
	if priv.Alpha, err = setuputils.RandomNonZeroFr(rng); err != nil {
		return nil, nil, err
	}
	if priv.Beta, err = setuputils.RandomNonZeroFr(rng); err != nil {
		return nil, nil, err
	}

	if pub.TauG1, pub.TauG2, err = provePart(rng, digest, &priv.Tau, personalizationTau); err != nil {
		return nil, nil, err
	}
	if pub.AlphaG1, pub.AlphaG2, err = provePart(rng, digest, &priv.Alpha, personalizationAlpha); err != nil {
		return nil, nil, err
	}
	if pub.BetaG1, pub.BetaG2, err = provePart(rng, digest, &priv.Beta, personalizationBeta); err != nil {
		return nil, nil, err
	}

	return pub, priv, nil
}

func provePart(rng io.Reader, digest []byte, x *fr.Element, personalization byte) ([2]bn254.G1Affine, bn254.G2Affine, error) {
	var g1Pair [2]bn254.G1Affine
	var g2x bn254.G2Affine

	s, err := setuputils.RandomNonZeroFr(rng)
	if err != nil {
		return g1Pair, g2x, err
	}

	var bi big.Int
	g1Pair[0].ScalarMultiplicationBase(s.BigInt(&bi))
	g1Pair[1].ScalarMultiplication(&g1Pair[0], x.BigInt(&bi))

	challenge, err := setuputils.HashToG2Challenge(digest, &g1Pair[0], &g1Pair[1], personalization)
	if err != nil {
		return g1Pair, g2x, err
	}
	g2x.ScalarMultiplication(&challenge, x.BigInt(&bi))
	return g1Pair, g2x, nil
}

// WriteTo serializes the key, all points compressed, into buf.
func (k *PublicKey) WriteTo(buf []byte) error {
	if len(buf) < publicKeyLength() {
		return &setuputils.LengthError{Expected: publicKeyLength(), Got: len(buf)}
	}
	g1 := bn254.SizeOfG1AffineCompressed
	g2 := bn254.SizeOfG2AffineCompressed

	off := 0
	for _, pair := range [][2]bn254.G1Affine{k.TauG1, k.AlphaG1, k.BetaG1} {
		for i := range pair {
			if err := setuputils.WriteG1(buf[off:], &pair[i], setuputils.Compressed); err != nil {
				return err
			}
			off += g1
		}
	}
	for _, p := range []bn254.G2Affine{k.TauG2, k.AlphaG2, k.BetaG2} {
		if err := setuputils.WriteG2(buf[off:], &p, setuputils.Compressed); err != nil {
			return err
		}
		off += g2
	}
	return nil
}

// ReadPublicKey deserializes a key from buf, rejecting identity components
// and points outside the prime-order subgroup.
func ReadPublicKey(buf []byte) (*PublicKey, error) {
	if len(buf) < publicKeyLength() {
		return nil, &setuputils.LengthError{Expected: publicKeyLength(), Got: len(buf)}
	}
	g1 := bn254.SizeOfG1AffineCompressed
	g2 := bn254.SizeOfG2AffineCompressed

	k := &PublicKey{}
	off := 0
	for _, pair := range []*[2]bn254.G1Affine{&k.TauG1, &k.AlphaG1, &k.BetaG1} {
		for i := range pair {
			p, err := setuputils.ReadG1(buf[off:], setuputils.Compressed, setuputils.CheckFull)
			if err != nil {
				return nil, err
			}
			pair[i] = p
			off += g1
		}
	}
	for _, dst := range []*bn254.G2Affine{&k.TauG2, &k.AlphaG2, &k.BetaG2} {
		p, err := setuputils.ReadG2(buf[off:], setuputils.Compressed, setuputils.CheckFull)
		if err != nil {
			return nil, err
		}
		*dst = p
		off += g2
	}
	return k, nil
}

func publicKeyLength() int {
	return 6*bn254.SizeOfG1AffineCompressed + 3*bn254.SizeOfG2AffineCompressed
}

// publicKeyPosition is the offset of the key inside an output buffer: right
// after the accumulator data.
func (p *Parameters) publicKeyPosition(c setuputils.UseCompression) int {
	if c == setuputils.Compressed {
		return p.ContributionSize - p.PublicKeySize
	}
	return p.AccumulatorSize
}
