package analyze_test

import (
	"context"
	"testing"

	"github.com/vouchdev/vouch/pkg/analyze"
)

func scanBloat(t *testing.T, files map[string]string) *analyze.BloatReport {
	t.Helper()
	root, list := writeProject(t, files)
	var a analyze.BloatAnalyzer
	report, err := a.Scan(context.Background(), root, list)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return report
}

func TestBloatUnusedImport(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"app.py": "import os\n\nprint(\"hello\")\n",
	})

	if len(report.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(report.Issues))
	}
	issue := report.Issues[0]
	if issue.Category != "unused_import" {
		t.Errorf("category = %q, want unused_import", issue.Category)
	}
	if issue.Line != 1 {
		t.Errorf("line = %d, want 1", issue.Line)
	}
	if report.UnusedImports != 1 || report.TotalImports != 1 {
		t.Errorf("unused/total = %d/%d, want 1/1", report.UnusedImports, report.TotalImports)
	}
	if report.Score != 95 {
		t.Errorf("score = %d, want 95", report.Score)
	}
}

func TestBloatUsedImportClean(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"app.py": "import os\n\nprint(os.getcwd())\n",
	})

	if len(report.Issues) != 0 {
		t.Fatalf("issues = %v, want none", report.Issues)
	}
	if report.Score != 100 {
		t.Errorf("score = %d, want 100", report.Score)
	}
}

func TestBloatAliasedImportUsedViaAlias(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"app.py": "import numpy as np\n\nprint(np.zeros(3))\n",
	})

	if report.UnusedImports != 0 {
		t.Errorf("unused = %d, want 0", report.UnusedImports)
	}
}

func TestBloatWildcardImportIgnored(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"app.py": "from os.path import *\n",
	})

	if report.UnusedImports != 0 {
		t.Errorf("unused = %d, want 0", report.UnusedImports)
	}
}

func TestBloatHeavyDepOncePerProject(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"a.py": "import pandas\n\npandas.DataFrame()\n",
		"b.py": "import pandas\n\npandas.Series()\n",
	})

	if len(report.HeavyDeps) != 1 || report.HeavyDeps[0] != "pandas" {
		t.Fatalf("heavy deps = %v, want [pandas]", report.HeavyDeps)
	}
	heavy := 0
	for _, issue := range report.Issues {
		if issue.Category == "heavy_dep" {
			heavy++
		}
	}
	if heavy != 1 {
		t.Errorf("heavy_dep issues = %d, want 1", heavy)
	}
}

func TestBloatManifestDedupedAgainstImport(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"app.py":           "import requests\n",
		"requirements.txt": "requests==2.31.0\n",
	})

	// One unused_import plus one heavy_dep; the manifest mention of the same
	// dependency adds nothing.
	if len(report.Issues) != 2 {
		t.Fatalf("issues = %d, want 2: %v", len(report.Issues), report.Issues)
	}
	if report.Score != 93 {
		t.Errorf("score = %d, want 93", report.Score)
	}
}

func TestBloatManifestOnlyHeavyDep(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"app.py":           "print(\"ok\")\n",
		"requirements.txt": "tensorflow>=2.0\n",
	})

	if len(report.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(report.Issues))
	}
	issue := report.Issues[0]
	if issue.File != "requirements.txt" || issue.Line != 0 {
		t.Errorf("issue at %s:%d, want requirements.txt:0", issue.File, issue.Line)
	}
	if report.Score != 98 {
		t.Errorf("score = %d, want 98", report.Score)
	}
}

func TestBloatUnparseableFileSkipped(t *testing.T) {
	report := scanBloat(t, map[string]string{
		"bad.py":  "def broken(:\n",
		"good.py": "import sys\n",
	})

	if len(report.Issues) != 1 {
		t.Fatalf("issues = %d, want 1 (from good.py only)", len(report.Issues))
	}
	if report.Issues[0].File != "good.py" {
		t.Errorf("issue file = %s, want good.py", report.Issues[0].File)
	}
}
