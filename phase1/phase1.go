package phase1

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// Accumulator is the in-memory form of a powers-of-tau transcript state.
//
// For the Groth16 layout the slices hold tau^i, tau^i in G2, alpha*tau^i and
// beta*tau^i. For the Marlin layout TauPowersG2 and AlphaTauPowersG1 hold the
// shifted powers needed for degree enforcement, BetaTauPowersG1 is empty and
// BetaG2 is pinned to the generator.
type Accumulator struct {
	TauPowersG1      []bn254.G1Affine
	TauPowersG2      []bn254.G2Affine
	AlphaTauPowersG1 []bn254.G1Affine
	BetaTauPowersG1  []bn254.G1Affine
	BetaG2           bn254.G2Affine

	// Hash is the digest of the contribution this state was read from.
	Hash []byte

	Parameters *Parameters
}
