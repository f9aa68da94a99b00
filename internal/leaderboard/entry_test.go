package leaderboard

import (
	"strings"
	"testing"

	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/pipeline"
	"github.com/vouchdev/vouch/pkg/scoring"
)

func resultWith(quality *analyze.QualityReport, bloat *analyze.BloatReport, security *analyze.SecurityReport, total int) *pipeline.Result {
	trust := scoring.NewTrustScore(0)
	trust.AddComponent(scoring.Component{Name: "Quality", Score: total, Weight: 1})
	if quality == nil {
		quality = &analyze.QualityReport{}
	}
	return &pipeline.Result{
		Quality:  quality,
		Bloat:    bloat,
		Security: security,
		Trust:    trust,
	}
}

func TestCategorizeSecurityNightmare(t *testing.T) {
	result := resultWith(nil, nil, &analyze.SecurityReport{CriticalCount: 3, HighCount: 1}, 20)

	if got := Categorize(result); got != CategorySecurityNightmare {
		t.Errorf("category = %s, want %s", got, CategorySecurityNightmare)
	}
}

func TestCategorizeBloatKing(t *testing.T) {
	result := resultWith(nil, &analyze.BloatReport{
		UnusedImports: 15,
		HeavyDeps:     []string{"pandas", "tensorflow"},
	}, nil, 30)

	if got := Categorize(result); got != CategoryBloatKing {
		t.Errorf("category = %s, want %s", got, CategoryBloatKing)
	}
}

func TestCategorizeSpaghettiMaster(t *testing.T) {
	quality := &analyze.QualityReport{Issues: []analyze.Issue{
		{Category: "arrow_pattern"},
		{Category: "arrow_pattern"},
		{Category: "arrow_pattern"},
	}}
	result := resultWith(quality, nil, nil, 40)

	if got := Categorize(result); got != CategorySpaghettiMaster {
		t.Errorf("category = %s, want %s", got, CategorySpaghettiMaster)
	}
}

func TestCategorizeLLMHallucinator(t *testing.T) {
	quality := &analyze.QualityReport{Issues: []analyze.Issue{
		{Category: "llm_artifact"},
		{Category: "llm_artifact"},
	}}
	result := resultWith(quality, nil, nil, 40)

	if got := Categorize(result); got != CategoryLLMHallucinator {
		t.Errorf("category = %s, want %s", got, CategoryLLMHallucinator)
	}
}

func TestCategorizeCleanProjectDeterministic(t *testing.T) {
	result := resultWith(nil, nil, nil, 90)

	// Nothing deducted: ties resolve to the first category in order.
	if got := Categorize(result); got != CategoryBloatKing {
		t.Errorf("category = %s, want %s on tie", got, CategoryBloatKing)
	}
}

func TestRemarkIncludesExtras(t *testing.T) {
	result := resultWith(nil,
		&analyze.BloatReport{UnusedImports: 8},
		&analyze.SecurityReport{CriticalCount: 2},
		10)

	remark := Remark(result, CategorySecurityNightmare)
	if !strings.Contains(remark, "8 unused imports") {
		t.Errorf("remark %q missing unused import count", remark)
	}
	if !strings.Contains(remark, "2 critical vulnerabilities") {
		t.Errorf("remark %q missing critical count", remark)
	}
}

func TestHighlightsCappedAtFive(t *testing.T) {
	security := &analyze.SecurityReport{Issues: []analyze.Issue{
		{Severity: analyze.SeverityCritical, Description: "a"},
		{Severity: analyze.SeverityHigh, Description: "b"},
		{Severity: analyze.SeverityHigh, Description: "c"},
		{Severity: analyze.SeverityHigh, Description: "d"},
	}}
	bloat := &analyze.BloatReport{Issues: []analyze.Issue{
		{Description: "e"}, {Description: "f"}, {Description: "g"},
	}}
	quality := &analyze.QualityReport{Issues: []analyze.Issue{
		{Description: "h"}, {Description: "i"},
	}}
	result := resultWith(quality, bloat, security, 5)

	highlights := Highlights(result)
	if len(highlights) != 5 {
		t.Fatalf("highlights = %d, want 5", len(highlights))
	}
	if highlights[0] != "[CRITICAL] a" {
		t.Errorf("first highlight = %q", highlights[0])
	}
}

func TestNewEntry(t *testing.T) {
	result := resultWith(nil, nil, &analyze.SecurityReport{CriticalCount: 2}, 15)
	entry := NewEntry("https://github.com/acme/junk", "acme/junk", result)

	if entry.Category != CategorySecurityNightmare {
		t.Errorf("category = %s, want %s", entry.Category, CategorySecurityNightmare)
	}
	if entry.Score != 15 || entry.Grade != "F" {
		t.Errorf("score/grade = %d/%s, want 15/F", entry.Score, entry.Grade)
	}
	if entry.Remark == "" {
		t.Error("remark missing")
	}
}

func TestNewService(t *testing.T) {
	// NewService should not panic with nil db (it just stores the reference).
	if NewService(nil) == nil {
		t.Fatal("NewService returned nil")
	}
}
