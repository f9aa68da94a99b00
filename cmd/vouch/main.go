// Package main provides the vouch CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "vouch",
		Short: "Trust scoring for source projects",
		Long: `Vouch scans a project's sources, grades quality, security, bloat, and
originality, and aggregates them into a certifiable trust score.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScanCmd(),
		newCertifyCmd(),
		newScoreCmd(),
		newInitCmd(),
		newShameCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
