package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/pipeline"
)

// MarkdownRenderer produces a certification report from a scan result.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, result *pipeline.Result) error {
	data := r.BuildReportData(result)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// BuildReportData creates the ReportData struct from a scan result.
func (r *MarkdownRenderer) BuildReportData(result *pipeline.Result) ReportData {
	trust := result.Trust
	return ReportData{
		Title:      fmt.Sprintf("vouch: Grade %s — Score %d/100", trust.Grade, trust.Total),
		Summary:    buildMarkdownSummary(result),
		Conclusion: gradeToConclusion(trust.Grade, trust.Certified),
	}
}

func gradeToConclusion(grade string, certified bool) string {
	if certified {
		return "certified"
	}
	if grade == "C" {
		return "review"
	}
	return "rejected"
}

func buildMarkdownSummary(result *pipeline.Result) string {
	var sb strings.Builder
	trust := result.Trust

	sb.WriteString(fmt.Sprintf("## vouch: Grade %s — Score %d/100\n\n", trust.Grade, trust.Total))

	if result.Badge != nil {
		sb.WriteString(result.Badge.Markdown + "\n\n")
	}

	// Component table
	sb.WriteString("### Components\n\n")
	sb.WriteString("| Component | Score | Details |\n|-----------|-------|--------|\n")
	for _, c := range trust.Components {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", c.Name, c.Score, c.Details))
	}
	sb.WriteString("\n")

	// Findings (max 10)
	issues := collectIssues(result)
	if len(issues) > 0 {
		sb.WriteString("### Findings\n\n")
		maxIssues := 10
		if len(issues) < maxIssues {
			maxIssues = len(issues)
		}
		for i := 0; i < maxIssues; i++ {
			issue := issues[i]
			sb.WriteString(fmt.Sprintf("- %s **%s** — %s\n",
				severityIcon(issue.Severity), location(issue), issue.Description))
		}
		if len(issues) > maxIssues {
			sb.WriteString(fmt.Sprintf("\n_... and %d more findings_\n", len(issues)-maxIssues))
		}
		sb.WriteString("\n")
	}

	// Suggestions (max 5)
	var suggestions []string
	for _, c := range trust.Components {
		suggestions = append(suggestions, c.Suggestions...)
	}
	if len(suggestions) > 0 {
		sb.WriteString("### Suggestions\n\n")
		maxSugg := 5
		if len(suggestions) < maxSugg {
			maxSugg = len(suggestions)
		}
		for i := 0; i < maxSugg; i++ {
			sb.WriteString(fmt.Sprintf("- %s\n", suggestions[i]))
		}
	}

	return sb.String()
}

func severityIcon(sev analyze.Severity) string {
	switch sev {
	case analyze.SeverityCritical, analyze.SeverityHigh:
		return ":red_circle:"
	case analyze.SeverityMedium, analyze.SeverityWarning:
		return ":orange_circle:"
	case analyze.SeverityLow:
		return ":yellow_circle:"
	default:
		return ":blue_circle:"
	}
}
