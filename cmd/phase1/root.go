package main

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/spf13/cobra"

	"github.com/kobigurk/phase2-bn254-sub000/phase1"
)

var rootCmd = &cobra.Command{
	Use:   "phase1",
	Short: "powers-of-tau trusted setup ceremony",
	Long: `phase1 runs the first phase of a multi-party trusted setup:
an accumulator of tau powers that every participant updates in turn,
with each update provable and publicly verifiable.`,
	SilenceUsage: true,
}

var (
	fPower         int
	fBatch         int
	fProvingSystem string
	fMode          string
	fChunkIndex    int
	fChunkSize     int
)

func init() {
	rootCmd.PersistentFlags().IntVar(&fPower, "power", 10, "log2 of the number of tau powers")
	rootCmd.PersistentFlags().IntVar(&fBatch, "batch", 256, "number of elements processed per batch")
	rootCmd.PersistentFlags().StringVar(&fProvingSystem, "proving-system", "groth16", "accumulator layout (groth16 or marlin)")
	rootCmd.PersistentFlags().StringVar(&fMode, "mode", "full", "contribution mode (full or chunked)")
	rootCmd.PersistentFlags().IntVar(&fChunkIndex, "chunk-index", 0, "chunk to operate on (chunked mode)")
	rootCmd.PersistentFlags().IntVar(&fChunkSize, "chunk-size", 512, "elements per chunk (chunked mode)")
}

// parametersFromFlags builds the ceremony parameters shared by all commands.
func parametersFromFlags() (*phase1.Parameters, error) {
	system, err := phase1.ProvingSystemFromString(fProvingSystem)
	if err != nil {
		return nil, err
	}
	mode, err := phase1.ContributionModeFromString(fMode)
	if err != nil {
		return nil, err
	}
	if mode == phase1.ContributionChunked {
		return phase1.NewChunkedParameters(ecc.BN254, system, fPower, fBatch, fChunkIndex, fChunkSize)
	}
	return phase1.NewFullParameters(ecc.BN254, system, fPower, fBatch)
}
