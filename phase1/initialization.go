package phase1

import (
	"golang.org/x/sync/errgroup"

	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// Initialization writes the genesis accumulator into output: every segment
// filled with its group generator, chained to the blank digest.
func Initialization(output []byte, c setuputils.UseCompression, p *Parameters) error {
	log := logger.Logger()

	sb, err := split(output, p, c)
	if err != nil {
		return err
	}

	copy(output[:p.HashSize], setuputils.BlankHash())

	nTauG1, nTauG2, nAlphaG1, nBetaG1 := p.segmentCounts()
	log.Debug().
		Int("tauG1", nTauG1).
		Int("tauG2", nTauG2).
		Stringer("compression", c).
		Msg("initializing accumulator")

	var g errgroup.Group
	g.Go(func() error { return setuputils.InitG1(sb.tauG1, nTauG1, c) })
	if nTauG2 > 0 {
		g.Go(func() error { return setuputils.InitG2(sb.tauG2, nTauG2, c) })
	}
	if nAlphaG1 > 0 {
		g.Go(func() error { return setuputils.InitG1(sb.alphaG1, nAlphaG1, c) })
	}
	if p.ProvingSystem == Groth16 {
		if nBetaG1 > 0 {
			g.Go(func() error { return setuputils.InitG1(sb.betaG1, nBetaG1, c) })
		}
		g.Go(func() error { return setuputils.InitG2(sb.betaG2, 1, c) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().
		Int("size", p.Size).
		Stringer("system", p.ProvingSystem).
		Msg("accumulator initialized")
	return nil
}
