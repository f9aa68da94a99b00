package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vouchdev/vouch/pkg/pyast"
)

// BloatReport is the bloat analyzer's output.
type BloatReport struct {
	Issues        []Issue  `json:"issues"`
	TotalImports  int      `json:"total_imports"`
	UnusedImports int      `json:"unused_imports"`
	HeavyDeps     []string `json:"heavy_deps"`
	Score         int      `json:"score"`
}

// add records an issue and applies its score deduction. The score is
// monotonically decreasing from 100 and floored at 0.
func (r *BloatReport) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	switch issue.Severity {
	case SeverityInfo:
		r.Score = clampScore(r.Score - 2)
	case SeverityWarning:
		r.Score = clampScore(r.Score - 5)
	default:
		r.Score = clampScore(r.Score - 10)
	}
}

// BloatAnalyzer detects unused imports and registry-listed heavy
// dependencies.
type BloatAnalyzer struct{}

// Scan analyzes the collected files plus the project's dependency manifests.
// Files that fail to parse are skipped. The returned report is always
// well-formed; zero findings means score 100.
func (a *BloatAnalyzer) Scan(ctx context.Context, root string, files []string) (*BloatReport, error) {
	report := &BloatReport{Score: 100}
	seenHeavy := make(map[string]bool)

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		f, err := pyast.Parse(ctx, rel, src)
		if err != nil {
			continue
		}
		a.scanFile(report, seenHeavy, rel, f)
		f.Close()
	}

	a.scanManifests(report, seenHeavy, root)

	sortIssues(report.Issues)
	return report, nil
}

func (a *BloatAnalyzer) scanFile(report *BloatReport, seenHeavy map[string]bool, rel string, f *pyast.File) {
	imports := f.Imports()
	refs := f.References()
	report.TotalImports += len(imports)

	for _, imp := range imports {
		if imp.Wildcard || refs[imp.Name] {
			continue
		}
		report.UnusedImports++
		report.add(Issue{
			File:        rel,
			Line:        imp.Line,
			Category:    "unused_import",
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("Unused import: %s", imp.Name),
			Suggestion:  fmt.Sprintf("Remove 'import %s' or use it", imp.Name),
		})
	}

	for _, imp := range imports {
		info, heavy := heavyDeps[imp.Name]
		if !heavy || seenHeavy[imp.Name] {
			continue
		}
		seenHeavy[imp.Name] = true
		report.HeavyDeps = append(report.HeavyDeps, imp.Name)
		report.add(Issue{
			File:        rel,
			Line:        imp.Line,
			Category:    "heavy_dep",
			Severity:    SeverityInfo,
			Description: fmt.Sprintf("Heavy dependency: %s (%s)", imp.Name, info.Size),
			Suggestion:  fmt.Sprintf("Consider: %s. %s", info.Alternative, info.Reason),
		})
	}
}

// scanManifests flags heavy dependencies declared in dependency manifests.
// Dependencies already seen via an import are suppressed so each heavy
// dependency yields exactly one issue per project.
func (a *BloatAnalyzer) scanManifests(report *BloatReport, seenHeavy map[string]bool, root string) {
	for _, name := range manifestFiles {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		content := strings.ToLower(string(data))
		for _, dep := range sortedHeavyDepNames() {
			info := heavyDeps[dep]
			if seenHeavy[dep] || !strings.Contains(content, dep) {
				continue
			}
			seenHeavy[dep] = true
			report.HeavyDeps = append(report.HeavyDeps, dep)
			report.add(Issue{
				File:        name,
				Line:        0,
				Category:    "heavy_dep",
				Severity:    SeverityInfo,
				Description: fmt.Sprintf("Heavy dependency: %s (%s)", dep, info.Size),
				Suggestion:  fmt.Sprintf("Consider: %s. %s", info.Alternative, info.Reason),
			})
		}
	}
}
