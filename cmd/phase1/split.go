package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/phase1"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "split a full accumulator into chunk challenges",
	RunE:  runSplit,
}

var (
	fSplitInput   string
	fSplitPattern string
)

func init() {
	splitCmd.Flags().StringVar(&fSplitInput, "input", "combined", "full accumulator file to read")
	splitCmd.Flags().StringVar(&fSplitPattern, "output", "challenge.%d", "chunk file pattern, %d is the chunk index")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	fMode = "chunked"
	p, err := parametersFromFlags()
	if err != nil {
		return err
	}

	input, err := os.ReadFile(fSplitInput)
	if err != nil {
		return err
	}

	outputs := make([][]byte, p.ChunkCount())
	for i := range outputs {
		cp, err := p.ChunkParameters(phase1.ContributionChunked, i, p.ChunkSize)
		if err != nil {
			return err
		}
		outputs[i] = make([]byte, cp.AccumulatorSize)
	}

	if err := phase1.Split(input, setuputils.Uncompressed, outputs, setuputils.Uncompressed, p); err != nil {
		return err
	}

	for i, out := range outputs {
		if err := os.WriteFile(fmt.Sprintf(fSplitPattern, i), out, 0o644); err != nil {
			return err
		}
	}
	log.Info().Int("chunks", len(outputs)).Msg("accumulator split")
	return nil
}
