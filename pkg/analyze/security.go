package analyze

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// SecurityReport is the security analyzer's output. The score is a single
// project-wide counter: it starts at 100 for the whole scan and is
// decremented per issue, floored at 0.
type SecurityReport struct {
	Issues        []Issue `json:"issues"`
	CriticalCount int     `json:"critical_count"`
	HighCount     int     `json:"high_count"`
	MediumCount   int     `json:"medium_count"`
	LowCount      int     `json:"low_count"`
	Score         int     `json:"score"`
}

func (r *SecurityReport) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	switch issue.Severity {
	case SeverityCritical:
		r.CriticalCount++
		r.Score = clampScore(r.Score - 25)
	case SeverityHigh:
		r.HighCount++
		r.Score = clampScore(r.Score - 15)
	case SeverityMedium:
		r.MediumCount++
		r.Score = clampScore(r.Score - 10)
	default:
		r.LowCount++
		r.Score = clampScore(r.Score - 5)
	}
}

// SecurityAnalyzer runs the rule table over every physical line of every
// file. One line may match several rules; each match is one issue.
type SecurityAnalyzer struct{}

// Scan analyzes the collected files. Unreadable files are skipped.
func (a *SecurityAnalyzer) Scan(ctx context.Context, root string, files []string) (*SecurityReport, error) {
	report := &SecurityReport{Score: 100}

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		a.scanFile(report, rel, string(src))
	}

	sortIssues(report.Issues)
	return report, nil
}

func (a *SecurityAnalyzer) scanFile(report *SecurityReport, rel, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if skipLine(line) {
			continue
		}
		for _, rule := range securityRules {
			if !rule.Match(line) {
				continue
			}
			report.add(Issue{
				File:        rel,
				Line:        i + 1,
				Category:    rule.Category,
				Severity:    rule.Severity,
				Description: rule.Description,
				Suggestion:  rule.Suggestion,
				Code:        rule.CWE,
			})
		}
	}
}

// skipLine filters lines that would make the scanner flag itself or a rule
// table like its own: comments, raw-string literals, and lines that declare
// patterns.
func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if strings.Contains(line, `"pattern"`) || strings.Contains(line, `'pattern'`) {
		return true
	}
	if strings.Contains(line, `r"`) || strings.Contains(line, `r'`) {
		return true
	}
	upper := strings.ToUpper(line)
	if strings.Contains(upper, "PATTERN") || strings.Contains(upper, "REGEX") {
		return true
	}
	return false
}
