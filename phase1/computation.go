package phase1

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// Computation applies the private key to the accumulator in input and writes
// the contribution into output. The first bytes of output receive the digest
// of input, extending the hash chain.
func Computation(
	input, output []byte,
	compressedInput, compressedOutput setuputils.UseCompression,
	checkInput setuputils.CheckForCorrectness,
	batchExpMode setuputils.BatchExpMode,
	key *PrivateKey,
	p *Parameters,
) error {
	log := logger.Logger()

	in, err := split(input, p, compressedInput)
	if err != nil {
		return err
	}
	out, err := split(output, p, compressedOutput)
	if err != nil {
		return err
	}

	copy(output[:p.HashSize], setuputils.CalculateHash(input[:p.Length(compressedInput)]))

	chunkStart, _ := p.chunkRange()

	if p.ProvingSystem == Groth16 {
		betaG2, err := setuputils.ReadG2(in.betaG2, compressedInput, checkInput)
		if err != nil {
			return err
		}
		var bi big.Int
		betaG2.ScalarMultiplication(&betaG2, key.Beta.BigInt(&bi))
		if err := setuputils.WriteG2(out.betaG2, &betaG2, compressedOutput); err != nil {
			return err
		}
	} else if p.isFirstChunk() {
		if err := computeMarlinExtras(in, out, compressedInput, compressedOutput, checkInput, batchExpMode, key, p); err != nil {
			return err
		}
	}

	err = iterChunk(p, func(start, end int) error {
		powers := setuputils.GeneratePowers(&key.Tau, start, end)

		var g errgroup.Group
		g.Go(func() error {
			return applyPowersG1(in.tauG1, out.tauG1,
				start-chunkStart, end-chunkStart,
				powers, nil,
				compressedInput, compressedOutput, checkInput, batchExpMode)
		})

		if p.ProvingSystem == Groth16 && start < p.PowersLength {
			// the shorter segments stop at 2^size elements
			endOther := minInt(end, p.PowersLength)
			otherPowers := powers[:endOther-start]
			g.Go(func() error {
				return applyPowersG2(in.tauG2, out.tauG2,
					start-chunkStart, endOther-chunkStart,
					otherPowers, nil,
					compressedInput, compressedOutput, checkInput, batchExpMode)
			})
			g.Go(func() error {
				return applyPowersG1(in.alphaG1, out.alphaG1,
					start-chunkStart, endOther-chunkStart,
					otherPowers, &key.Alpha,
					compressedInput, compressedOutput, checkInput, batchExpMode)
			})
			g.Go(func() error {
				return applyPowersG1(in.betaG1, out.betaG1,
					start-chunkStart, endOther-chunkStart,
					otherPowers, &key.Beta,
					compressedInput, compressedOutput, checkInput, batchExpMode)
			})
		}
		return g.Wait()
	})
	if err != nil {
		return err
	}

	log.Info().
		Stringer("mode", p.ContributionMode).
		Int("chunk", p.ChunkIndex).
		Msg("contribution computed")
	return nil
}

// computeMarlinExtras transforms the degree-bound segments carried by the
// first Marlin chunk: shifted inverse tau powers in G2 and the alpha triples
// (f, f*tau, f*tau^2) in G1.
func computeMarlinExtras(
	in, out *splitBuf,
	compressedInput, compressedOutput setuputils.UseCompression,
	checkInput setuputils.CheckForCorrectness,
	batchExpMode setuputils.BatchExpMode,
	key *PrivateKey,
	p *Parameters,
) error {
	degreeBoundPowers := make([]fr.Element, p.Size)
	for i := range degreeBoundPowers {
		exp := int64(p.PowersLength - 1 - (1 << i) + 2)
		degreeBoundPowers[i].Exp(key.Tau, big.NewInt(exp))
	}

	g2Powers := make([]fr.Element, p.Size)
	copy(g2Powers, degreeBoundPowers)
	g2Powers = fr.BatchInvert(g2Powers)
	if err := applyPowersG2(in.tauG2, out.tauG2, 2, p.Size+2, g2Powers, nil,
		compressedInput, compressedOutput, checkInput, batchExpMode); err != nil {
		return err
	}

	var tau2 fr.Element
	tau2.Square(&key.Tau)
	g1DegreePowers := make([]fr.Element, 3*p.Size)
	for i, f := range degreeBoundPowers {
		g1DegreePowers[3*i] = f
		g1DegreePowers[3*i+1].Mul(&f, &key.Tau)
		g1DegreePowers[3*i+2].Mul(&f, &tau2)
	}
	if err := applyPowersG1(in.alphaG1, out.alphaG1, 3, 3+3*p.Size, g1DegreePowers, &key.Alpha,
		compressedInput, compressedOutput, checkInput, batchExpMode); err != nil {
		return err
	}

	lowPowers := setuputils.GeneratePowers(&key.Tau, 0, 3)
	if err := applyPowersG1(in.alphaG1, out.alphaG1, 0, 3, lowPowers, &key.Alpha,
		compressedInput, compressedOutput, checkInput, batchExpMode); err != nil {
		return err
	}
	return applyPowersG2(in.tauG2, out.tauG2, 0, 2, lowPowers[:2], nil,
		compressedInput, compressedOutput, checkInput, batchExpMode)
}

func applyPowersG1(
	inBuf, outBuf []byte,
	start, end int,
	powers []fr.Element,
	coeff *fr.Element,
	compressedInput, compressedOutput setuputils.UseCompression,
	check setuputils.CheckForCorrectness,
	mode setuputils.BatchExpMode,
) error {
	if end <= start {
		return nil
	}
	inSize := setuputils.BufferSizeG1(compressedInput)
	outSize := setuputils.BufferSizeG1(compressedOutput)

	points, err := setuputils.ReadBatchG1(inBuf[start*inSize:], end-start, compressedInput, check)
	if err != nil {
		return err
	}
	setuputils.BatchExpG1(points, powers[:end-start], coeff, mode)
	return setuputils.WriteBatchG1(outBuf[start*outSize:], points, compressedOutput)
}

func applyPowersG2(
	inBuf, outBuf []byte,
	start, end int,
	powers []fr.Element,
	coeff *fr.Element,
	compressedInput, compressedOutput setuputils.UseCompression,
	check setuputils.CheckForCorrectness,
	mode setuputils.BatchExpMode,
) error {
	if end <= start {
		return nil
	}
	inSize := setuputils.BufferSizeG2(compressedInput)
	outSize := setuputils.BufferSizeG2(compressedOutput)

	points, err := setuputils.ReadBatchG2(inBuf[start*inSize:], end-start, compressedInput, check)
	if err != nil {
		return err
	}
	setuputils.BatchExpG2(points, powers[:end-start], coeff, mode)
	return setuputils.WriteBatchG2(outBuf[start*outSize:], points, compressedOutput)
}
