package surface_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/pipeline"
	"github.com/vouchdev/vouch/pkg/scoring"
	"github.com/vouchdev/vouch/pkg/surface"
)

func sampleResult() *pipeline.Result {
	trust := scoring.NewTrustScore(0)
	trust.AddComponent(scoring.Component{
		Name:    "Quality",
		Score:   60,
		Weight:  0.25,
		Details: "README: Yes, Tests: No",
		Suggestions: []string{
			"Add a test suite",
		},
	})
	trust.AddComponent(scoring.Component{
		Name:    "Security",
		Score:   75,
		Weight:  0.25,
		Details: "Critical: 1, High: 0",
	})

	return &pipeline.Result{
		ScanID:      "0d1f3c6a-demo",
		ProjectPath: "/tmp/demo",
		FileCount:   4,
		Quality: &analyze.QualityReport{
			Score: 60,
			Issues: []analyze.Issue{
				{File: "app.py", Line: 12, Category: "arrow_pattern", Severity: analyze.SeverityWarning, Description: "arrow_pattern: Nesting depth: 4"},
			},
		},
		Security: &analyze.SecurityReport{
			Score:         75,
			CriticalCount: 1,
			Issues: []analyze.Issue{
				{File: "app.py", Line: 3, Category: "code_injection", Severity: analyze.SeverityCritical, Description: "Use of eval() - allows arbitrary code execution", Code: "CWE-95"},
			},
		},
		Trust: trust,
	}
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()

	// Check header
	if !strings.Contains(output, "Grade C") {
		t.Error("expected Grade C in output")
	}
	if !strings.Contains(output, "Score 67/100") {
		t.Error("expected Score 67/100 in output")
	}

	// Check components
	if !strings.Contains(output, "Quality") || !strings.Contains(output, "README: Yes, Tests: No") {
		t.Error("expected Quality component with details")
	}

	// Check findings
	if !strings.Contains(output, "app.py:12") {
		t.Error("expected quality finding location")
	}
	if !strings.Contains(output, "Use of eval()") {
		t.Error("expected security finding description")
	}

	// Check suggestions
	if !strings.Contains(output, "Suggested fixes:") {
		t.Error("expected Suggested fixes section")
	}
	if !strings.Contains(output, "Add a test suite") {
		t.Error("expected suggestion text")
	}
}

func TestTerminalRenderer_NoFindings(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	trust := scoring.NewTrustScore(0)
	trust.AddComponent(scoring.Component{Name: "Quality", Score: 100, Weight: 1})
	result := &pipeline.Result{
		Quality: &analyze.QualityReport{Score: 100},
		Trust:   trust,
	}

	if err := r.Render(&buf, result); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(buf.String(), "No findings") {
		t.Error("expected 'No findings' message")
	}
}

func TestTerminalRenderer_BadgeShownWhenCertified(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	result := sampleResult()
	badge := scoring.NewBadge(result.Trust.Total, "")
	result.Badge = &badge

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, result); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(buf.String(), badge.Markdown) {
		t.Error("expected badge markdown in output")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestMarkdownRenderer_ReportData(t *testing.T) {
	r := &surface.MarkdownRenderer{}
	data := r.BuildReportData(sampleResult())

	if data.Title != "vouch: Grade C — Score 67/100" {
		t.Errorf("title = %q", data.Title)
	}
	if data.Conclusion != "review" {
		t.Errorf("conclusion = %q, want review", data.Conclusion)
	}
	if !strings.Contains(data.Summary, "| Quality | 60 |") {
		t.Error("expected component table row for Quality")
	}
	if !strings.Contains(data.Summary, "Use of eval()") {
		t.Error("expected security finding in summary")
	}
}
