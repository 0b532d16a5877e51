package setuputils

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// SameRatio checks e(a1, a2) == e(b1, b2) with a single pairing product.
func SameRatio(a1, b1 bn254.G1Affine, a2, b2 bn254.G2Affine) (bool, error) {
	var na2 bn254.G2Affine
	na2.Neg(&a2)
	return bn254.PairingCheck(
		[]bn254.G1Affine{a1, b1},
		[]bn254.G2Affine{na2, b2},
	)
}

// CheckSameRatio verifies that g1[0]:g1[1] and g2[0]:g2[1] hide the same
// scalar, i.e. e(g1[0], g2[1]) == e(g1[1], g2[0]).
func CheckSameRatio(g1 [2]bn254.G1Affine, g2 [2]bn254.G2Affine, context string) error {
	ok, err := SameRatio(g1[0], g1[1], g2[1], g2[0])
	if err != nil {
		return err
	}
	if !ok {
		return &RatioError{Context: context}
	}
	return nil
}

// PowerPairsG1 merges a sequence p_0..p_{n-1} into a random linear combination
// pair (sum r_i p_i, sum r_i p_{i+1}). If the p_i are consecutive powers of a
// scalar, both sums hide that same scalar, so the pair feeds CheckSameRatio.
func PowerPairsG1(points []bn254.G1Affine) ([2]bn254.G1Affine, error) {
	var res [2]bn254.G1Affine
	n := len(points)
	if n < 2 {
		return res, &LengthError{Expected: 2, Got: n}
	}
	scalars := make([]fr.Element, n-1)
	for i := range scalars {
		if _, err := scalars[i].SetRandom(); err != nil {
			return res, err
		}
	}
	if _, err := res[0].MultiExp(points[:n-1], scalars, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	if _, err := res[1].MultiExp(points[1:], scalars, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	return res, nil
}

// PowerPairsG2 is the G2 counterpart of PowerPairsG1.
func PowerPairsG2(points []bn254.G2Affine) ([2]bn254.G2Affine, error) {
	var res [2]bn254.G2Affine
	n := len(points)
	if n < 2 {
		return res, &LengthError{Expected: 2, Got: n}
	}
	scalars := make([]fr.Element, n-1)
	for i := range scalars {
		if _, err := scalars[i].SetRandom(); err != nil {
			return res, err
		}
	}
	if _, err := res[0].MultiExp(points[:n-1], scalars, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	if _, err := res[1].MultiExp(points[1:], scalars, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	return res, nil
}
