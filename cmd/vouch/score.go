package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vouchdev/vouch/pkg/scoring"
)

func newScoreCmd() *cobra.Command {
	var badgeStyle string

	cmd := &cobra.Command{
		Use:   "score [path]",
		Short: "Print just the trust score, grade, and badge",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			result, err := runScan(cmd.Context(), root, scanOpts{})
			if err != nil {
				return err
			}

			trust := result.Trust
			fmt.Printf("%d/100 (%s)\n", trust.Total, trust.Grade)

			badge := scoring.NewBadge(trust.Total, badgeStyle)
			fmt.Println(badge.Markdown)
			return nil
		},
	}

	cmd.Flags().StringVar(&badgeStyle, "badge-style", "", "shields.io badge style")

	return cmd
}
