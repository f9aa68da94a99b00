package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/pipeline"
	"github.com/vouchdev/vouch/pkg/scoring"
)

// TerminalRenderer renders a scan result as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(grade string) string {
	if noColor() {
		return ""
	}
	switch grade {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	case "D", "F":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *pipeline.Result) error {
	trust := result.Trust
	gc := gradeColor(trust.Grade)

	// Header
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("vouch: Grade %s — Score %d/100",
		colored(trust.Grade, gc), trust.Total)))
	fmt.Fprintf(w, "%s\n\n", dim(scoring.GradeMessage(trust.Grade)))

	fmt.Fprintf(w, "Analyzed: %d files in %s\n\n", result.FileCount, result.ProjectPath)

	// Component breakdown
	fmt.Fprintln(w, "Components:")
	for _, c := range trust.Components {
		fmt.Fprintf(w, "  %3d  %s", c.Score, bold(c.Name))
		if c.Details != "" {
			fmt.Fprintf(w, " — %s", c.Details)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	// Findings
	issues := collectIssues(result)
	if len(issues) > 0 {
		fmt.Fprintln(w, "Findings:")
		maxIssues := 10
		if len(issues) < maxIssues {
			maxIssues = len(issues)
		}
		for i := 0; i < maxIssues; i++ {
			issue := issues[i]
			fmt.Fprintf(w, "  %s %s — %s\n",
				colored("●", severityColor(issue.Severity)),
				bold(location(issue)), issue.Description)
		}
		if len(issues) > maxIssues {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("... and %d more", len(issues)-maxIssues)))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No findings.")
		fmt.Fprintln(w)
	}

	// Suggestions
	var suggestions []string
	for _, c := range trust.Components {
		suggestions = append(suggestions, c.Suggestions...)
	}
	if len(suggestions) > 0 {
		fmt.Fprintln(w, "Suggested fixes:")
		for _, s := range suggestions {
			for i, line := range wrapText(s, 70) {
				if i == 0 {
					fmt.Fprintf(w, "  • %s\n", line)
				} else {
					fmt.Fprintf(w, "    %s\n", dim(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	if result.Badge != nil {
		fmt.Fprintf(w, "Badge: %s\n", result.Badge.Markdown)
	}

	return nil
}

// collectIssues merges all analyzer findings in report order.
func collectIssues(result *pipeline.Result) []analyze.Issue {
	var issues []analyze.Issue
	issues = append(issues, result.Quality.Issues...)
	if result.Bloat != nil {
		issues = append(issues, result.Bloat.Issues...)
	}
	if result.Security != nil {
		issues = append(issues, result.Security.Issues...)
	}
	if result.Duplicate != nil && len(result.Duplicate.Matches) > 0 {
		for _, m := range result.Duplicate.Matches {
			issues = append(issues, analyze.Issue{
				Category:    "duplicate_intent",
				Severity:    analyze.SeverityInfo,
				Description: fmt.Sprintf("Resembles %s (%.0f%% similar)", m.Name, m.Similarity*100),
				Suggestion:  m.Suggestion,
			})
		}
	}
	return issues
}

func location(issue analyze.Issue) string {
	if issue.File == "" {
		return issue.Category
	}
	if issue.Line == 0 {
		return issue.File
	}
	return fmt.Sprintf("%s:%d", issue.File, issue.Line)
}

func severityColor(sev analyze.Severity) string {
	if noColor() {
		return ""
	}
	switch sev {
	case analyze.SeverityCritical, analyze.SeverityHigh:
		return colorRed
	case analyze.SeverityMedium, analyze.SeverityWarning:
		return colorYellow
	default:
		return colorDim
	}
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
