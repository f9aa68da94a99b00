package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vouchdev/vouch/pkg/pyast"
)

// Filename candidates for the structural checks, probed at the project root.
var (
	readmeCandidates   = []string{"README.md", "README.rst", "README.txt", "README"}
	licenseCandidates  = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING"}
	testsCandidates    = []string{"tests", "test", "tests.py", "test.py"}
	manifestCandidates = []string{"pyproject.toml", "setup.py", "requirements.txt"}
)

// QualityReport is the quality analyzer's output.
type QualityReport struct {
	HasReadme   bool `json:"has_readme"`
	HasLicense  bool `json:"has_license"`
	HasTests    bool `json:"has_tests"`
	HasManifest bool `json:"has_manifest"`

	TotalFunctions      int `json:"total_functions"`
	DocumentedFunctions int `json:"documented_functions"`
	TypedFunctions      int `json:"typed_functions"`
	TotalClasses        int `json:"total_classes"`
	DocumentedClasses   int `json:"documented_classes"`

	// Issues holds detected code smells, ordered by file then line.
	Issues []Issue `json:"issues"`
	Score  int     `json:"score"`
}

// QualityAnalyzer checks project structure, documentation and typing ratios,
// and code-shape smells.
type QualityAnalyzer struct{}

// Scan analyzes the collected files. Unparseable files are skipped; missing
// structural artifacts are recorded as false, never as errors.
func (a *QualityAnalyzer) Scan(ctx context.Context, root string, files []string) (*QualityReport, error) {
	report := &QualityReport{}
	a.checkProjectFiles(report, root)

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		a.scanLines(report, rel, src)

		f, err := pyast.Parse(ctx, rel, src)
		if err != nil {
			continue
		}
		a.scanTree(report, rel, f)
		f.Close()
	}

	report.Score = a.score(report)
	sortIssues(report.Issues)
	return report, nil
}

func (a *QualityAnalyzer) checkProjectFiles(report *QualityReport, root string) {
	report.HasReadme = anyExists(root, readmeCandidates)
	report.HasLicense = anyExists(root, licenseCandidates)
	report.HasTests = anyExists(root, testsCandidates)
	report.HasManifest = anyExists(root, manifestCandidates)
}

// scanLines handles the smells that work on raw text: oversized files and
// leftover assistant chatter.
func (a *QualityAnalyzer) scanLines(report *QualityReport, rel string, src []byte) {
	lines := strings.Split(string(src), "\n")

	if len(lines) > godFileLines {
		report.addSmell(rel, 1, SmellGodFile, fmt.Sprintf("%d lines", len(lines)))
	}

	for i, line := range lines {
		if isLLMArtifactLine(line) {
			report.addSmell(rel, i+1, SmellLLMArtifact, snippet(strings.TrimSpace(line)))
		}
	}
}

func (a *QualityAnalyzer) scanTree(report *QualityReport, rel string, f *pyast.File) {
	for _, fn := range f.Functions() {
		report.TotalFunctions++
		if fn.Documented {
			report.DocumentedFunctions++
		}
		if fn.Typed {
			report.TypedFunctions++
		}
		if len(fn.Name) > longNameChars {
			report.addSmell(rel, fn.Line, SmellLongName, fn.Name)
		}
		if fn.NestingDepth > maxNestingDepth {
			report.addSmell(rel, fn.Line, SmellArrowPattern, fmt.Sprintf("Nesting depth: %d", fn.NestingDepth))
		}
	}

	for _, c := range f.Classes() {
		report.TotalClasses++
		if c.Documented {
			report.DocumentedClasses++
		}
		if len(c.Name) > longNameChars {
			report.addSmell(rel, c.Line, SmellLongName, c.Name)
		}
	}

	for _, h := range f.ExceptHandlers() {
		if h.NoOpBody {
			report.addSmell(rel, h.Line, SmellExceptPass, "except: pass")
		}
	}
}

// score combines structural flags (up to 40), documentation ratios (up to
// 30), and typing ratio (up to 30), capped at 100. Ratios contribute 0 when
// there is nothing to measure.
func (a *QualityAnalyzer) score(report *QualityReport) int {
	score := 0
	if report.HasReadme {
		score += 15
	}
	if report.HasLicense {
		score += 10
	}
	if report.HasTests {
		score += 10
	}
	if report.HasManifest {
		score += 5
	}

	if report.TotalFunctions > 0 {
		docRatio := float64(report.DocumentedFunctions) / float64(report.TotalFunctions)
		score += int(docRatio * 20)
		typeRatio := float64(report.TypedFunctions) / float64(report.TotalFunctions)
		score += int(typeRatio * 30)
	}
	if report.TotalClasses > 0 {
		classDocRatio := float64(report.DocumentedClasses) / float64(report.TotalClasses)
		score += int(classDocRatio * 10)
	}

	if score > 100 {
		score = 100
	}
	return score
}

func (r *QualityReport) addSmell(file string, line int, smellType, context string) {
	r.Issues = append(r.Issues, Issue{
		File:        file,
		Line:        line,
		Category:    smellType,
		Severity:    SeverityWarning,
		Description: fmt.Sprintf("%s: %s", smellType, context),
		Suggestion:  smellRemediation[smellType],
	})
}

func anyExists(root string, candidates []string) bool {
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= 50 {
		return s
	}
	runes := []rune(s)
	return string(runes[:50])
}
