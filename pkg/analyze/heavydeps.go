package analyze

import "sort"

// HeavyDep describes a registry-listed dependency that is disproportionately
// large relative to typical usage, and what to reach for instead.
type HeavyDep struct {
	Size        string // "large" or "huge"
	Alternative string
	Reason      string
}

// heavyDeps is the fixed heavy-dependency registry, keyed by package name as
// it appears in imports and dependency manifests.
var heavyDeps = map[string]HeavyDep{
	"requests": {
		Size:        "large",
		Alternative: "httpx or urllib3",
		Reason:      "requests pulls in many transitive deps",
	},
	"beautifulsoup4": {
		Size:        "large",
		Alternative: "selectolax or lxml",
		Reason:      "bs4 is slow, lighter alternatives exist",
	},
	"pandas": {
		Size:        "huge",
		Alternative: "polars or duckdb",
		Reason:      "pandas is 50MB+, consider if you need it all",
	},
	"tensorflow": {
		Size:        "huge",
		Alternative: "pytorch or onnxruntime",
		Reason:      "the full framework is massive for most workloads",
	},
	"django": {
		Size:        "huge",
		Alternative: "fastapi or flask",
		Reason:      "batteries-included, often far more than needed",
	},
}

// manifestFiles are the dependency manifests checked for heavy dependencies.
var manifestFiles = []string{
	"requirements.txt",
	"pyproject.toml",
	"setup.py",
}

// HeavyDeps returns the heavy-dependency registry. Read-only during a scan.
func HeavyDeps() map[string]HeavyDep {
	return heavyDeps
}

// sortedHeavyDepNames returns registry keys in stable order, so manifest
// scanning yields deterministic issue sequences.
func sortedHeavyDepNames() []string {
	names := make([]string, 0, len(heavyDeps))
	for name := range heavyDeps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
