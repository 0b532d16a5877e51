package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobigurk/phase2-bn254-sub000/ceremony"
	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/phase1"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "aggregate chunk responses into a full accumulator",
	RunE:  runCombine,
}

var (
	fChunkPattern  string
	fCombined      string
	fSkipAggVerify bool
)

func init() {
	combineCmd.Flags().StringVar(&fChunkPattern, "chunks", "response.%d", "chunk file pattern, %d is the chunk index")
	combineCmd.Flags().StringVar(&fCombined, "output", "combined", "combined accumulator file to write")
	combineCmd.Flags().BoolVar(&fSkipAggVerify, "skip-ratio-checks", false, "skip the consistency checks on the combined accumulator")
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	fMode = "chunked"
	p, err := parametersFromFlags()
	if err != nil {
		return err
	}

	tracker := ceremony.NewChunkTracker(p)
	inputs := make([]phase1.AggregationInput, p.ChunkCount())
	for i := range inputs {
		buf, err := os.ReadFile(fmt.Sprintf(fChunkPattern, i))
		if err != nil {
			return err
		}
		inputs[i] = phase1.AggregationInput{Buffer: buf, Compression: setuputils.Compressed}
		if err := tracker.Mark(i); err != nil {
			return err
		}
	}
	if !tracker.Complete() {
		return fmt.Errorf("missing chunks: %v", tracker.Missing())
	}

	output := make([]byte, fullLength(p))
	if err := phase1.Aggregation(inputs, output, setuputils.Uncompressed, p); err != nil {
		return err
	}

	if !fSkipAggVerify {
		if err := phase1.AggregateVerification(output, setuputils.Uncompressed, setuputils.CheckFull, setuputils.SubgroupCheckAuto, p); err != nil {
			return err
		}
	}

	if err := os.WriteFile(fCombined, output, 0o644); err != nil {
		return err
	}
	log.Info().Str("output", fCombined).Int("chunks", len(inputs)).Msg("accumulator combined")
	return nil
}

// fullLength is the size of the full uncompressed accumulator regardless of
// the chunking flags.
func fullLength(p *phase1.Parameters) int {
	full, err := phase1.NewFullParameters(p.Curve.ID, p.ProvingSystem, p.Size, p.BatchSize)
	if err != nil {
		// parameters already validated
		panic(err)
	}
	return full.AccumulatorSize
}
