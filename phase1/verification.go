package phase1

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/sync/errgroup"

	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// readPolicy splits a correctness policy into the part enforced while
// decoding and the part enforced by a (possibly batched) subgroup check.
func readPolicy(check setuputils.CheckForCorrectness) (setuputils.CheckForCorrectness, bool) {
	decode := setuputils.CheckNo
	if check == setuputils.CheckFull || check == setuputils.CheckOnlyNonZero {
		decode = setuputils.CheckOnlyNonZero
	}
	subgroup := check == setuputils.CheckFull || check == setuputils.CheckOnlyInGroup
	return decode, subgroup
}

// Verification checks that output is a valid contribution on top of input
// under the given public key: the key's proofs of knowledge hold against the
// transcript digest, the first elements are anchored to the generators, the
// updates are consistent with the key, and every output element is a valid
// group element.
func Verification(
	input, output []byte,
	key *PublicKey,
	digest []byte,
	compressedInput, compressedOutput setuputils.UseCompression,
	checkInput, checkOutput setuputils.CheckForCorrectness,
	subgroupMode setuputils.SubgroupCheckMode,
	p *Parameters,
) error {
	log := logger.Logger()

	if len(digest) != setuputils.HashSize {
		return &setuputils.LengthError{Expected: setuputils.HashSize, Got: len(digest)}
	}

	in, err := split(input, p, compressedInput)
	if err != nil {
		return err
	}
	out, err := split(output, p, compressedOutput)
	if err != nil {
		return err
	}

	if p.isFirstChunk() {
		if err := verifyAnchor(in, out, key, digest, compressedInput, compressedOutput, checkInput, checkOutput, p); err != nil {
			return err
		}
	}

	decodeOut, needSubgroup := readPolicy(checkOutput)
	outG1Size := p.g1Size(compressedOutput)
	outG2Size := p.g2Size(compressedOutput)
	chunkStart, _ := p.chunkRange()

	checkBatchG1 := func(buf []byte, localStart, count int) error {
		points, err := setuputils.ReadBatchG1(buf[localStart*outG1Size:], count, compressedOutput, decodeOut)
		if err != nil {
			return err
		}
		if needSubgroup {
			return setuputils.CheckSubgroupG1(points, subgroupMode)
		}
		return nil
	}
	checkBatchG2 := func(buf []byte, localStart, count int) error {
		points, err := setuputils.ReadBatchG2(buf[localStart*outG2Size:], count, compressedOutput, decodeOut)
		if err != nil {
			return err
		}
		if needSubgroup {
			return setuputils.CheckSubgroupG2(points, subgroupMode)
		}
		return nil
	}

	err = iterChunk(p, func(start, end int) error {
		var g errgroup.Group
		g.Go(func() error { return checkBatchG1(out.tauG1, start-chunkStart, end-start) })

		if p.ProvingSystem == Groth16 && start < p.PowersLength {
			endOther := minInt(end, p.PowersLength)
			g.Go(func() error { return checkBatchG2(out.tauG2, start-chunkStart, endOther-start) })
			g.Go(func() error { return checkBatchG1(out.alphaG1, start-chunkStart, endOther-start) })
			g.Go(func() error { return checkBatchG1(out.betaG1, start-chunkStart, endOther-start) })
		}
		return g.Wait()
	})
	if err != nil {
		return err
	}

	if p.ProvingSystem == Marlin && p.isFirstChunk() {
		if err := checkBatchG2(out.tauG2, 0, p.Size+2); err != nil {
			return err
		}
		if err := checkBatchG1(out.alphaG1, 0, 3+3*p.Size); err != nil {
			return err
		}
	}
	if p.ProvingSystem == Groth16 {
		betaG2, err := setuputils.ReadG2(out.betaG2, compressedOutput, decodeOut)
		if err != nil {
			return err
		}
		if needSubgroup && !betaG2.IsInSubGroup() {
			return setuputils.ErrIncorrectSubgroup
		}
	}

	log.Info().
		Stringer("mode", p.ContributionMode).
		Int("chunk", p.ChunkIndex).
		Msg("contribution verified")
	return nil
}

// verifyAnchor checks the proof of knowledge and ties the first accumulator
// elements of input and output together through the key.
func verifyAnchor(
	in, out *splitBuf,
	key *PublicKey,
	digest []byte,
	compressedInput, compressedOutput setuputils.UseCompression,
	checkInput, checkOutput setuputils.CheckForCorrectness,
	p *Parameters,
) error {
	tauChallenge, err := setuputils.HashToG2Challenge(digest, &key.TauG1[0], &key.TauG1[1], personalizationTau)
	if err != nil {
		return err
	}
	alphaChallenge, err := setuputils.HashToG2Challenge(digest, &key.AlphaG1[0], &key.AlphaG1[1], personalizationAlpha)
	if err != nil {
		return err
	}
	betaChallenge, err := setuputils.HashToG2Challenge(digest, &key.BetaG1[0], &key.BetaG1[1], personalizationBeta)
	if err != nil {
		return err
	}

	if err := setuputils.CheckSameRatio(key.TauG1, [2]bn254.G2Affine{tauChallenge, key.TauG2}, "tau knowledge"); err != nil {
		return err
	}
	if err := setuputils.CheckSameRatio(key.AlphaG1, [2]bn254.G2Affine{alphaChallenge, key.AlphaG2}, "alpha knowledge"); err != nil {
		return err
	}
	if err := setuputils.CheckSameRatio(key.BetaG1, [2]bn254.G2Affine{betaChallenge, key.BetaG2}, "beta knowledge"); err != nil {
		return err
	}

	beforeTauG1, err := setuputils.ReadBatchG1(in.tauG1, 2, compressedInput, checkInput)
	if err != nil {
		return err
	}
	afterTauG1, err := setuputils.ReadBatchG1(out.tauG1, 2, compressedOutput, checkOutput)
	if err != nil {
		return err
	}
	beforeTauG2, err := setuputils.ReadBatchG2(in.tauG2, 2, compressedInput, checkInput)
	if err != nil {
		return err
	}
	afterTauG2, err := setuputils.ReadBatchG2(out.tauG2, 2, compressedOutput, checkOutput)
	if err != nil {
		return err
	}

	_, _, g1, g2 := bn254.Generators()
	if !afterTauG1[0].Equal(&g1) {
		return &setuputils.GeneratorError{Element: setuputils.TauG1}
	}
	if !afterTauG2[0].Equal(&g2) {
		return &setuputils.GeneratorError{Element: setuputils.TauG2}
	}

	if err := setuputils.CheckSameRatio(
		[2]bn254.G1Affine{beforeTauG1[1], afterTauG1[1]},
		[2]bn254.G2Affine{tauChallenge, key.TauG2},
		"tau update in G1"); err != nil {
		return err
	}
	if err := setuputils.CheckSameRatio(
		key.TauG1,
		[2]bn254.G2Affine{beforeTauG2[1], afterTauG2[1]},
		"tau update in G2"); err != nil {
		return err
	}

	beforeAlpha, err := setuputils.ReadG1(in.alphaG1, compressedInput, checkInput)
	if err != nil {
		return err
	}
	afterAlpha, err := setuputils.ReadG1(out.alphaG1, compressedOutput, checkOutput)
	if err != nil {
		return err
	}
	if err := setuputils.CheckSameRatio(
		[2]bn254.G1Affine{beforeAlpha, afterAlpha},
		[2]bn254.G2Affine{alphaChallenge, key.AlphaG2},
		"alpha update"); err != nil {
		return err
	}

	if p.ProvingSystem != Groth16 {
		return nil
	}

	beforeBeta, err := setuputils.ReadG1(in.betaG1, compressedInput, checkInput)
	if err != nil {
		return err
	}
	afterBeta, err := setuputils.ReadG1(out.betaG1, compressedOutput, checkOutput)
	if err != nil {
		return err
	}
	if err := setuputils.CheckSameRatio(
		[2]bn254.G1Affine{beforeBeta, afterBeta},
		[2]bn254.G2Affine{betaChallenge, key.BetaG2},
		"beta update in G1"); err != nil {
		return err
	}

	beforeBetaG2, err := setuputils.ReadG2(in.betaG2, compressedInput, checkInput)
	if err != nil {
		return err
	}
	afterBetaG2, err := setuputils.ReadG2(out.betaG2, compressedOutput, checkOutput)
	if err != nil {
		return err
	}
	return setuputils.CheckSameRatio(
		key.BetaG1,
		[2]bn254.G2Affine{beforeBetaG2, afterBetaG2},
		"beta update in G2")
}

// AggregateVerification checks the internal consistency of an aggregated
// full accumulator: every segment is a well-formed geometric progression in
// tau, anchored at the generators. It does not need the contribution keys,
// which makes it the defense against chunks swapped or replayed during
// aggregation.
func AggregateVerification(
	output []byte,
	compressed setuputils.UseCompression,
	check setuputils.CheckForCorrectness,
	subgroupMode setuputils.SubgroupCheckMode,
	p *Parameters,
) error {
	log := logger.Logger()

	full := p
	if p.ContributionMode == ContributionChunked {
		var err error
		full, err = NewFullParameters(p.Curve.ID, p.ProvingSystem, p.Size, p.BatchSize)
		if err != nil {
			return err
		}
	}

	sb, err := split(output, full, compressed)
	if err != nil {
		return err
	}

	decode, needSubgroup := readPolicy(check)
	g1Size := full.g1Size(compressed)
	g2Size := full.g2Size(compressed)

	readG1 := func(buf []byte, start, count int) ([]bn254.G1Affine, error) {
		points, err := setuputils.ReadBatchG1(buf[start*g1Size:], count, compressed, decode)
		if err != nil {
			return nil, err
		}
		if needSubgroup {
			if err := setuputils.CheckSubgroupG1(points, subgroupMode); err != nil {
				return nil, err
			}
		}
		return points, nil
	}
	readG2 := func(buf []byte, start, count int) ([]bn254.G2Affine, error) {
		points, err := setuputils.ReadBatchG2(buf[start*g2Size:], count, compressed, decode)
		if err != nil {
			return nil, err
		}
		if needSubgroup {
			if err := setuputils.CheckSubgroupG2(points, subgroupMode); err != nil {
				return nil, err
			}
		}
		return points, nil
	}

	// the reference ratios everything else is checked against
	g1Check, err := readG1(sb.tauG1, 0, 2)
	if err != nil {
		return err
	}
	g2Check, err := readG2(sb.tauG2, 0, 2)
	if err != nil {
		return err
	}

	_, _, g1, g2 := bn254.Generators()
	if !g1Check[0].Equal(&g1) {
		return &setuputils.GeneratorError{Element: setuputils.TauG1}
	}
	if !g2Check[0].Equal(&g2) {
		return &setuputils.GeneratorError{Element: setuputils.TauG2}
	}
	if err := setuputils.CheckSameRatio(
		[2]bn254.G1Affine{g1Check[0], g1Check[1]},
		[2]bn254.G2Affine{g2Check[0], g2Check[1]},
		"tau in G1 and G2"); err != nil {
		return err
	}

	checkRatiosG1 := func(buf []byte, start, end int, context string) error {
		if end-start < 2 {
			return nil
		}
		points, err := readG1(buf, start, end-start)
		if err != nil {
			return err
		}
		pair, err := setuputils.PowerPairsG1(points)
		if err != nil {
			return err
		}
		return setuputils.CheckSameRatio(pair, [2]bn254.G2Affine{g2Check[0], g2Check[1]}, context)
	}
	checkRatiosG2 := func(buf []byte, start, end int, context string) error {
		if end-start < 2 {
			return nil
		}
		points, err := readG2(buf, start, end-start)
		if err != nil {
			return err
		}
		pair, err := setuputils.PowerPairsG2(points)
		if err != nil {
			return err
		}
		return setuputils.CheckSameRatio([2]bn254.G1Affine{g1Check[0], g1Check[1]}, pair, context)
	}

	if full.ProvingSystem == Marlin {
		if err := aggregateVerifyMarlin(sb, full, readG1, readG2, g2Check, checkRatiosG1); err != nil {
			return err
		}
	} else {
		err = iterChunk(full, func(start, end int) error {
			var g errgroup.Group
			g.Go(func() error { return checkRatiosG1(sb.tauG1, start, end, "tau powers in G1") })
			if start < full.PowersLength {
				endOther := minInt(end, full.PowersLength)
				g.Go(func() error { return checkRatiosG2(sb.tauG2, start, endOther, "tau powers in G2") })
				g.Go(func() error { return checkRatiosG1(sb.alphaG1, start, endOther, "alpha tau powers") })
				g.Go(func() error { return checkRatiosG1(sb.betaG1, start, endOther, "beta tau powers") })
			}
			return g.Wait()
		})
		if err != nil {
			return err
		}
	}

	log.Info().Stringer("system", full.ProvingSystem).Msg("aggregated accumulator verified")
	return nil
}

func aggregateVerifyMarlin(
	sb *splitBuf,
	full *Parameters,
	readG1 func([]byte, int, int) ([]bn254.G1Affine, error),
	readG2 func([]byte, int, int) ([]bn254.G2Affine, error),
	g2Check []bn254.G2Affine,
	checkRatiosG1 func([]byte, int, int, string) error,
) error {
	_, _, g1, g2 := bn254.Generators()

	degreeG2, err := readG2(sb.tauG2, 2, full.Size)
	if err != nil {
		return err
	}
	alphaHead, err := readG1(sb.alphaG1, 0, 3)
	if err != nil {
		return err
	}
	alphaTriples, err := readG1(sb.alphaG1, 3, 3*full.Size)
	if err != nil {
		return err
	}

	// alpha, alpha*tau, alpha*tau^2
	pair, err := setuputils.PowerPairsG1(alphaHead)
	if err != nil {
		return err
	}
	if err := setuputils.CheckSameRatio(pair, [2]bn254.G2Affine{g2Check[0], g2Check[1]}, "alpha head powers"); err != nil {
		return err
	}

	for i := 0; i < full.Size; i++ {
		triple := alphaTriples[3*i : 3*i+3]
		tpair, err := setuputils.PowerPairsG1(triple)
		if err != nil {
			return err
		}
		if err := setuputils.CheckSameRatio(tpair, [2]bn254.G2Affine{g2Check[0], g2Check[1]}, "alpha degree triple"); err != nil {
			return err
		}
		// the triple base times the shifted inverse power collapses to alpha
		ok, err := setuputils.SameRatio(triple[0], alphaHead[0], degreeG2[i], g2)
		if err != nil {
			return err
		}
		if !ok {
			return &setuputils.RatioError{Context: "alpha degree bound"}
		}
	}

	return iterChunk(full, func(start, end int) error {
		if err := checkRatiosG1(sb.tauG1, start, end, "tau powers in G1"); err != nil {
			return err
		}
		for i := 0; i < full.Size; i++ {
			pos := full.PowersLength - 1 - (1 << i) + 2
			if pos < start || pos >= end {
				continue
			}
			tau, err := readG1(sb.tauG1, pos, 1)
			if err != nil {
				return err
			}
			ok, err := setuputils.SameRatio(tau[0], g1, degreeG2[i], g2)
			if err != nil {
				return err
			}
			if !ok {
				return &setuputils.RatioError{Context: "tau degree bound"}
			}
		}
		return nil
	})
}
