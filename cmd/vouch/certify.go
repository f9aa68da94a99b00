package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vouchdev/vouch/pkg/pipeline"
)

func newCertifyCmd() *cobra.Command {
	var (
		threshold int
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "certify [path]",
		Short: "Scan a project and certify it against the trust threshold",
		Long: `Runs the full scan and exits non-zero when the project does not reach
the certification threshold. Certified projects get a badge.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			result, err := runScan(cmd.Context(), root, scanOpts{threshold: threshold})
			if err != nil {
				return err
			}

			if err := render(outputFmt, result); err != nil {
				return err
			}

			if !result.Trust.Certified {
				return fmt.Errorf("certification failed: %s", pipeline.Summary(result))
			}

			fmt.Fprintf(os.Stderr, "Certified: %s\n", pipeline.Summary(result))
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "Certification threshold (default from config)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json, or markdown")

	return cmd
}
