package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kobigurk/phase2-bn254-sub000/ceremony"
	"github.com/kobigurk/phase2-bn254-sub000/logger"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "create the genesis challenge",
	RunE:  runNew,
}

var (
	fChallenge string
	fMetadata  string
)

func init() {
	newCmd.Flags().StringVar(&fChallenge, "challenge", "challenge", "challenge file to write")
	newCmd.Flags().StringVar(&fMetadata, "metadata", "", "optional metadata envelope to write")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	p, err := parametersFromFlags()
	if err != nil {
		return err
	}
	session := ceremony.NewSession(p)

	challenge, err := session.NewChallenge()
	if err != nil {
		return err
	}
	if err := os.WriteFile(fChallenge, challenge, 0o644); err != nil {
		return err
	}

	if fMetadata != "" {
		envelope, err := ceremony.EncodeMetadata(&session.Metadata)
		if err != nil {
			return err
		}
		if err := os.WriteFile(fMetadata, envelope, 0o644); err != nil {
			return err
		}
	}

	log.Info().Str("challenge", fChallenge).Int("bytes", len(challenge)).Msg("genesis challenge written")
	return nil
}
