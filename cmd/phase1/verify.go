package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kobigurk/phase2-bn254-sub000/ceremony"
	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify a response against its challenge",
	RunE:  runVerify,
}

var (
	fVerifyChallenge string
	fVerifyResponse  string
	fNextChallenge   string
	fSubgroupMode    string
)

func init() {
	verifyCmd.Flags().StringVar(&fVerifyChallenge, "challenge", "challenge", "challenge file to read")
	verifyCmd.Flags().StringVar(&fVerifyResponse, "response", "response", "response file to verify")
	verifyCmd.Flags().StringVar(&fNextChallenge, "next-challenge", "", "optional next challenge file to write on success")
	verifyCmd.Flags().StringVar(&fSubgroupMode, "subgroup-check", "auto", "subgroup check strategy (auto, direct or batched)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	p, err := parametersFromFlags()
	if err != nil {
		return err
	}
	subgroupMode, err := setuputils.SubgroupCheckModeFromString(fSubgroupMode)
	if err != nil {
		return err
	}

	challenge, err := os.ReadFile(fVerifyChallenge)
	if err != nil {
		return err
	}
	response, err := os.ReadFile(fVerifyResponse)
	if err != nil {
		return err
	}

	session := ceremony.NewSession(p)
	digest, err := session.VerifyRound(challenge, response, subgroupMode)
	if err != nil {
		return err
	}
	log.Info().Hex("digest", digest[:16]).Msg("response verified")

	if fNextChallenge != "" {
		next, err := session.NextChallenge(response)
		if err != nil {
			return err
		}
		if err := os.WriteFile(fNextChallenge, next, 0o644); err != nil {
			return err
		}
		log.Info().Str("challenge", fNextChallenge).Msg("next challenge written")
	}
	return nil
}
