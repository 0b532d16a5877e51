// phase1 is the command line driver of the trusted setup: it creates the
// genesis challenge, computes and verifies contributions, and moves between
// the full and chunked representations of the accumulator.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
