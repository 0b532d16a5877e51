package setuputils

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// batchExpThreshold is the batch size above which sharing the affine
// conversions beats per-point scalar multiplications.
const batchExpThreshold = 1 << 12

// GeneratePowers returns x^start, x^(start+1), ..., x^(end-1).
func GeneratePowers(x *fr.Element, start, end int) []fr.Element {
	if end <= start {
		return nil
	}
	powers := make([]fr.Element, end-start)
	powers[0].Exp(*x, big.NewInt(int64(start)))
	for i := 1; i < len(powers); i++ {
		powers[i].Mul(&powers[i-1], x)
	}
	return powers
}

// BatchExpG1 multiplies points[i] by powers[i] (times coeff when non-nil), in place.
func BatchExpG1(points []bn254.G1Affine, powers []fr.Element, coeff *fr.Element, mode BatchExpMode) {
	if mode == BatchExpAuto {
		if len(points) >= batchExpThreshold {
			mode = BatchExpBatchInversion
		} else {
			mode = BatchExpDirect
		}
	}

	if mode == BatchExpDirect {
		Execute(len(points), func(start, end int) {
			var bi big.Int
			for i := start; i < end; i++ {
				tmp := powers[i]
				if coeff != nil {
					tmp.Mul(&tmp, coeff)
				}
				tmp.BigInt(&bi)
				points[i].ScalarMultiplication(&points[i], &bi)
			}
		})
		return
	}

	// batch inversion: accumulate in Jacobian coordinates, then convert the
	// whole batch back to affine with a single inversion per worker
	jacs := make([]bn254.G1Jac, len(points))
	Execute(len(points), func(start, end int) {
		var bi big.Int
		for i := start; i < end; i++ {
			tmp := powers[i]
			if coeff != nil {
				tmp.Mul(&tmp, coeff)
			}
			tmp.BigInt(&bi)
			jacs[i].FromAffine(&points[i])
			jacs[i].ScalarMultiplication(&jacs[i], &bi)
		}
	})
	converted := bn254.BatchJacobianToAffineG1(jacs)
	copy(points, converted)
}

// BatchExpG2 multiplies points[i] by powers[i] (times coeff when non-nil), in place.
// G2 has no batched affine conversion, so all modes multiply directly.
func BatchExpG2(points []bn254.G2Affine, powers []fr.Element, coeff *fr.Element, mode BatchExpMode) {
	_ = mode
	Execute(len(points), func(start, end int) {
		var bi big.Int
		for i := start; i < end; i++ {
			tmp := powers[i]
			if coeff != nil {
				tmp.Mul(&tmp, coeff)
			}
			tmp.BigInt(&bi)
			points[i].ScalarMultiplication(&points[i], &bi)
		}
	})
}
