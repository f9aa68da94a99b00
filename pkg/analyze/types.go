// Package analyze implements the vouch analyzers: bloat, quality, security,
// and duplicate-intent. Each analyzer consumes the collector's file list,
// owns a private report accumulator, and produces a self-scored report.
package analyze

import "sort"

// Severity indicates how concerning an issue is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
)

// Issue is a single finding. Immutable once created. Line 0 means the issue
// applies to the project as a whole rather than a specific line.
type Issue struct {
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
	Code        string   `json:"code,omitempty"` // classification code, e.g. a CWE
}

// sortIssues orders issues by file path, then line. Analyzers sort before
// surfacing so results stay deterministic regardless of scan order.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].Line < issues[j].Line
	})
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
