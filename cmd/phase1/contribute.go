package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobigurk/phase2-bn254-sub000/ceremony"
	"github.com/kobigurk/phase2-bn254-sub000/logger"
	"github.com/kobigurk/phase2-bn254-sub000/setuputils"
)

var contributeCmd = &cobra.Command{
	Use:   "contribute",
	Short: "apply a contribution to a challenge",
	RunE:  runContribute,
}

var (
	fInChallenge      string
	fResponse         string
	fSeed             string
	fBeacon           string
	fBeaconDifficulty uint
)

func init() {
	contributeCmd.Flags().StringVar(&fInChallenge, "challenge", "challenge", "challenge file to read")
	contributeCmd.Flags().StringVar(&fResponse, "response", "response", "response file to write")
	contributeCmd.Flags().StringVar(&fSeed, "seed", "", "hex seed for a reproducible contribution (default: system randomness)")
	contributeCmd.Flags().StringVar(&fBeacon, "beacon", "", "hex beacon value for the final contribution")
	contributeCmd.Flags().UintVar(&fBeaconDifficulty, "beacon-difficulty", 10, "log2 hash iterations applied to the beacon")
	rootCmd.AddCommand(contributeCmd)
}

func contributionSource() (io.Reader, error) {
	switch {
	case fSeed != "" && fBeacon != "":
		return nil, errors.New("--seed and --beacon are mutually exclusive")
	case fSeed != "":
		seed, err := hex.DecodeString(fSeed)
		if err != nil {
			return nil, err
		}
		return setuputils.NewSeededRandomSource(seed)
	case fBeacon != "":
		beacon, err := hex.DecodeString(fBeacon)
		if err != nil {
			return nil, err
		}
		return setuputils.NewBeaconRandomSource(beacon, fBeaconDifficulty)
	default:
		return rand.Reader, nil
	}
}

func runContribute(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	p, err := parametersFromFlags()
	if err != nil {
		return err
	}
	rng, err := contributionSource()
	if err != nil {
		return err
	}

	challenge, err := os.ReadFile(fInChallenge)
	if err != nil {
		return err
	}

	session := ceremony.NewSession(p)
	response, _, err := session.Contribute(challenge, rng)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fResponse, response, 0o644); err != nil {
		return err
	}

	log.Info().
		Str("response", fResponse).
		Hex("digest", setuputils.CalculateHash(response[:p.Length(setuputils.Compressed)])[:16]).
		Msg("contribution written")
	return nil
}
