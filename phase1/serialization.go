package phase1

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

// segmentCounts returns the number of elements each segment holds under p.
func (p *Parameters) segmentCounts() (tauG1, tauG2, alphaG1, betaG1 int) {
	tauG1 = p.G1ChunkSize
	if p.ProvingSystem == Marlin {
		if p.isFirstChunk() {
			tauG2 = p.Size + 2
			alphaG1 = 3 + 3*p.Size
		}
		return
	}
	tauG2 = p.OtherChunkSize
	alphaG1 = p.OtherChunkSize
	betaG1 = p.OtherChunkSize
	return
}

// Serialize writes the accumulator into buf under the layout of its
// parameters.
func (a *Accumulator) Serialize(buf []byte, c setuputils.UseCompression) error {
	p := a.Parameters
	sb, err := split(buf, p, c)
	if err != nil {
		return err
	}

	copy(buf[:p.HashSize], a.Hash)

	if err := setuputils.WriteBatchG1(sb.tauG1, a.TauPowersG1, c); err != nil {
		return err
	}
	if len(sb.tauG2) > 0 {
		if err := setuputils.WriteBatchG2(sb.tauG2, a.TauPowersG2, c); err != nil {
			return err
		}
	}
	if len(sb.alphaG1) > 0 {
		if err := setuputils.WriteBatchG1(sb.alphaG1, a.AlphaTauPowersG1, c); err != nil {
			return err
		}
	}
	if p.ProvingSystem == Marlin {
		return nil
	}
	if len(sb.betaG1) > 0 {
		if err := setuputils.WriteBatchG1(sb.betaG1, a.BetaTauPowersG1, c); err != nil {
			return err
		}
	}
	return setuputils.WriteG2(sb.betaG2, &a.BetaG2, c)
}

// Deserialize reads an accumulator from buf under the layout of p.
func Deserialize(buf []byte, c setuputils.UseCompression, check setuputils.CheckForCorrectness, p *Parameters) (*Accumulator, error) {
	sb, err := split(buf, p, c)
	if err != nil {
		return nil, err
	}

	nTauG1, nTauG2, nAlphaG1, nBetaG1 := p.segmentCounts()

	a := &Accumulator{Parameters: p}
	a.Hash = make([]byte, p.HashSize)
	copy(a.Hash, buf[:p.HashSize])

	if a.TauPowersG1, err = setuputils.ReadBatchG1(sb.tauG1, nTauG1, c, check); err != nil {
		return nil, err
	}
	if nTauG2 > 0 {
		if a.TauPowersG2, err = setuputils.ReadBatchG2(sb.tauG2, nTauG2, c, check); err != nil {
			return nil, err
		}
	}
	if nAlphaG1 > 0 {
		if a.AlphaTauPowersG1, err = setuputils.ReadBatchG1(sb.alphaG1, nAlphaG1, c, check); err != nil {
			return nil, err
		}
	}

	if p.ProvingSystem == Marlin {
		_, _, _, g2 := bn254.Generators()
		a.BetaG2 = g2
		return a, nil
	}

	if nBetaG1 > 0 {
		if a.BetaTauPowersG1, err = setuputils.ReadBatchG1(sb.betaG1, nBetaG1, c, check); err != nil {
			return nil, err
		}
	}
	if a.BetaG2, err = setuputils.ReadG2(sb.betaG2, c, check); err != nil {
		return nil, err
	}
	return a, nil
}

// Decompress rewrites a compressed accumulator buffer into the uncompressed
// layout, validating points along the way.
func Decompress(input, output []byte, check setuputils.CheckForCorrectness, p *Parameters) error {
	in, err := split(input, p, setuputils.Compressed)
	if err != nil {
		return err
	}
	out, err := split(output, p, setuputils.Uncompressed)
	if err != nil {
		return err
	}

	copy(output[:p.HashSize], input[:p.HashSize])

	nTauG1, nTauG2, nAlphaG1, nBetaG1 := p.segmentCounts()

	tauG1, err := setuputils.ReadBatchG1(in.tauG1, nTauG1, setuputils.Compressed, check)
	if err != nil {
		return err
	}
	if err := setuputils.WriteBatchG1(out.tauG1, tauG1, setuputils.Uncompressed); err != nil {
		return err
	}

	if nTauG2 > 0 {
		tauG2, err := setuputils.ReadBatchG2(in.tauG2, nTauG2, setuputils.Compressed, check)
		if err != nil {
			return err
		}
		if err := setuputils.WriteBatchG2(out.tauG2, tauG2, setuputils.Uncompressed); err != nil {
			return err
		}
	}
	if nAlphaG1 > 0 {
		alphaG1, err := setuputils.ReadBatchG1(in.alphaG1, nAlphaG1, setuputils.Compressed, check)
		if err != nil {
			return err
		}
		if err := setuputils.WriteBatchG1(out.alphaG1, alphaG1, setuputils.Uncompressed); err != nil {
			return err
		}
	}

	if p.ProvingSystem == Marlin {
		return nil
	}

	if nBetaG1 > 0 {
		betaG1, err := setuputils.ReadBatchG1(in.betaG1, nBetaG1, setuputils.Compressed, check)
		if err != nil {
			return err
		}
		if err := setuputils.WriteBatchG1(out.betaG1, betaG1, setuputils.Uncompressed); err != nil {
			return err
		}
	}

	betaG2, err := setuputils.ReadG2(in.betaG2, setuputils.Compressed, check)
	if err != nil {
		return err
	}
	return setuputils.WriteG2(out.betaG2, &betaG2, setuputils.Uncompressed)
}
