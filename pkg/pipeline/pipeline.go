// Package pipeline runs the full vouch scan: collect, analyze, aggregate.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/collect"
	"github.com/vouchdev/vouch/pkg/scoring"
)

// Options controls one pipeline run. The zero value disables the optional
// analyzers; callers normally populate it from config.
type Options struct {
	ScanBloat      bool
	ScanSecurity   bool
	ScanDuplicates bool

	// IgnoreDirs extends the collector's default ignore set.
	IgnoreDirs []string

	// CertifyThreshold is the minimum total for certification. Zero means
	// the default.
	CertifyThreshold int

	// BadgeStyle is the shields.io style. Empty means the default.
	BadgeStyle string

	// Registry, when non-nil and ScanDuplicates is set, augments local
	// signature matching.
	Registry analyze.RegistryClient

	// Weights are the component weights. The zero value means defaults.
	Weights scoring.Weights
}

// Result is the complete output of one scan.
type Result struct {
	ScanID      string    `json:"scan_id"`
	ProjectPath string    `json:"project_path"`
	ScannedAt   time.Time `json:"scanned_at"`
	FileCount   int       `json:"file_count"`

	Quality   *analyze.QualityReport   `json:"quality"`
	Bloat     *analyze.BloatReport     `json:"bloat,omitempty"`
	Security  *analyze.SecurityReport  `json:"security,omitempty"`
	Duplicate *analyze.DuplicateReport `json:"duplicate,omitempty"`

	Trust *scoring.TrustScore `json:"trust"`
	Badge *scoring.Badge      `json:"badge,omitempty"` // set when certified
}

// Run executes the scan pipeline against a project root. The quality
// analyzer always runs; the others follow the options. It fails fast when
// the root does not exist and otherwise returns a complete result.
func Run(ctx context.Context, root string, opts Options) (*Result, error) {
	files, err := collect.Collect(ctx, root, collect.Options{IgnoreDirs: opts.IgnoreDirs})
	if err != nil {
		return nil, fmt.Errorf("collecting sources: %w", err)
	}

	result := &Result{
		ScanID:      uuid.NewString(),
		ProjectPath: root,
		ScannedAt:   time.Now().UTC(),
		FileCount:   len(files),
	}

	var qa analyze.QualityAnalyzer
	result.Quality, err = qa.Scan(ctx, root, files)
	if err != nil {
		return nil, fmt.Errorf("quality analysis: %w", err)
	}

	if opts.ScanBloat {
		var ba analyze.BloatAnalyzer
		result.Bloat, err = ba.Scan(ctx, root, files)
		if err != nil {
			return nil, fmt.Errorf("bloat analysis: %w", err)
		}
	}
	if opts.ScanSecurity {
		var sa analyze.SecurityAnalyzer
		result.Security, err = sa.Scan(ctx, root, files)
		if err != nil {
			return nil, fmt.Errorf("security analysis: %w", err)
		}
	}
	if opts.ScanDuplicates {
		da := analyze.DuplicateAnalyzer{Registry: opts.Registry}
		result.Duplicate, err = da.Scan(ctx, root, files)
		if err != nil {
			return nil, fmt.Errorf("duplicate analysis: %w", err)
		}
	}

	aggregate(result, root, opts)
	return result, nil
}

// aggregate folds the analyzer reports into the trust score and renders the
// badge when the project certifies.
func aggregate(result *Result, root string, opts Options) {
	weights := opts.Weights
	if weights == (scoring.Weights{}) {
		weights = scoring.DefaultWeights()
	}

	trust := scoring.NewTrustScore(opts.CertifyThreshold)
	trust.AddComponent(qualityComponent(result.Quality, weights.Quality))
	if result.Security != nil {
		trust.AddComponent(securityComponent(result.Security, weights.Security))
	}
	if result.Bloat != nil {
		trust.AddComponent(efficiencyComponent(result.Bloat, weights.Efficiency))
	}
	if result.Duplicate != nil {
		trust.AddComponent(uniquenessComponent(result.Duplicate, weights.Uniqueness))
	}
	trust.AddComponent(provenanceComponent(root, result.Quality, weights.Provenance))

	result.Trust = trust
	if trust.Certified {
		badge := scoring.NewBadge(trust.Total, opts.BadgeStyle)
		result.Badge = &badge
	}
}

func qualityComponent(report *analyze.QualityReport, weight float64) scoring.Component {
	var suggestions []string
	if !report.HasReadme {
		suggestions = append(suggestions, "Add a README.md describing the project")
	}
	if !report.HasLicense {
		suggestions = append(suggestions, "Add a LICENSE file")
	}
	if !report.HasTests {
		suggestions = append(suggestions, "Add a test suite")
	}
	if report.TotalFunctions > 0 && report.DocumentedFunctions*2 < report.TotalFunctions {
		suggestions = append(suggestions, "Document your functions with docstrings")
	}
	return scoring.Component{
		Name:        "Quality",
		Score:       report.Score,
		Weight:      weight,
		Details:     fmt.Sprintf("README: %s, Tests: %s", yesNo(report.HasReadme), yesNo(report.HasTests)),
		Suggestions: suggestions,
	}
}

func securityComponent(report *analyze.SecurityReport, weight float64) scoring.Component {
	var suggestions []string
	for i, issue := range report.Issues {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, fmt.Sprintf("Fix: %s", issue.Description))
	}
	return scoring.Component{
		Name:        "Security",
		Score:       report.Score,
		Weight:      weight,
		Details:     fmt.Sprintf("Critical: %d, High: %d", report.CriticalCount, report.HighCount),
		Suggestions: suggestions,
	}
}

func efficiencyComponent(report *analyze.BloatReport, weight float64) scoring.Component {
	var suggestions []string
	for i, issue := range report.Issues {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, issue.Suggestion)
	}
	return scoring.Component{
		Name:        "Efficiency",
		Score:       report.Score,
		Weight:      weight,
		Details:     fmt.Sprintf("Unused imports: %d, Heavy deps: %d", report.UnusedImports, len(report.HeavyDeps)),
		Suggestions: suggestions,
	}
}

func uniquenessComponent(report *analyze.DuplicateReport, weight float64) scoring.Component {
	var suggestions []string
	for i, m := range report.Matches {
		if i == 2 {
			break
		}
		suggestions = append(suggestions, fmt.Sprintf("Check: %s - %s", m.Name, m.Suggestion))
	}
	return scoring.Component{
		Name:        "Uniqueness",
		Score:       report.Score,
		Weight:      weight,
		Details:     fmt.Sprintf("Similar projects: %d", len(report.Matches)),
		Suggestions: suggestions,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
