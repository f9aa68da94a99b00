package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vouchdev/vouch/internal/registry"
	"github.com/vouchdev/vouch/pkg/config"
	"github.com/vouchdev/vouch/pkg/pipeline"
	"github.com/vouchdev/vouch/pkg/surface"
)

func newScanCmd() *cobra.Command {
	var (
		outputFmt   string
		skipBloat   bool
		skipSec     bool
		skipDup     bool
		online      bool
		registryURL string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Full trust analysis of a project",
		Long:  `Collects the project's sources, runs all analyzers, and renders the aggregated trust score.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			result, err := runScan(cmd.Context(), root, scanOpts{
				skipBloat:   skipBloat,
				skipSec:     skipSec,
				skipDup:     skipDup,
				online:      online,
				registryURL: registryURL,
			})
			if err != nil {
				return err
			}

			return render(outputFmt, result)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json, or markdown")
	cmd.Flags().BoolVar(&skipBloat, "skip-bloat", false, "Skip the bloat analyzer")
	cmd.Flags().BoolVar(&skipSec, "skip-security", false, "Skip the security analyzer")
	cmd.Flags().BoolVar(&skipDup, "skip-duplicates", false, "Skip the duplicate-intent analyzer")
	cmd.Flags().BoolVar(&online, "online", false, "Consult the remote signature registry")
	cmd.Flags().StringVar(&registryURL, "registry-url", "", "Signature registry base URL")

	return cmd
}

type scanOpts struct {
	skipBloat   bool
	skipSec     bool
	skipDup     bool
	online      bool
	registryURL string
	threshold   int
}

// runScan loads project config, applies flag overrides, and runs the
// pipeline with progress on stderr.
func runScan(ctx context.Context, root string, opts scanOpts) (*pipeline.Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	cfg, err := loadProjectConfig(abs)
	if err != nil {
		return nil, err
	}

	pipeOpts := pipeline.Options{
		ScanBloat:        cfg.Scan.CheckBloat && !opts.skipBloat,
		ScanSecurity:     cfg.Scan.CheckSecurity && !opts.skipSec,
		ScanDuplicates:   cfg.Scan.CheckDuplicates && !opts.skipDup,
		IgnoreDirs:       cfg.Scan.IgnorePaths,
		CertifyThreshold: cfg.Scoring.CertifyThreshold,
		BadgeStyle:       cfg.Badge.Style,
		Weights:          cfg.Scoring.Weights,
	}
	if opts.threshold > 0 {
		pipeOpts.CertifyThreshold = opts.threshold
	}

	if pipeOpts.ScanDuplicates && (opts.online || cfg.Scan.CheckOnline) {
		url := firstNonEmpty(opts.registryURL, cfg.Scan.RegistryURL)
		if url != "" {
			pipeOpts.Registry = registry.NewClient(url)
		}
	}

	fmt.Fprintf(os.Stderr, "Scanning %s...\n", abs)
	result, err := pipeline.Run(ctx, abs, pipeOpts)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Analyzed %d files.\n", result.FileCount)

	return result, nil
}

// loadProjectConfig finds and loads .vouch.yaml for a project root, falling
// back to defaults when none exists anywhere up the tree.
func loadProjectConfig(root string) (*config.Config, error) {
	path := config.FindConfigFile(root)
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

func render(outputFmt string, result *pipeline.Result) error {
	if err := newRenderer(outputFmt).Render(os.Stdout, result); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

func newRenderer(outputFmt string) surface.Renderer {
	switch outputFmt {
	case "json":
		return &surface.JSONRenderer{}
	case "markdown":
		return &surface.MarkdownRenderer{}
	default:
		return &surface.TerminalRenderer{}
	}
}

