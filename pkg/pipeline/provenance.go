package pipeline

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/collect"
	"github.com/vouchdev/vouch/pkg/scoring"
)

// provenanceMarkers are filename fragments that indicate supply-chain
// attestation artifacts anywhere in the project tree.
var provenanceMarkers = []string{"provenance", "in-toto", "intoto", "sigstore", "attestation", "sbom"}

// provenanceComponent scores supply-chain readiness: 50 base, +25 for a
// dependency manifest, +25 for attestation artifacts.
func provenanceComponent(root string, quality *analyze.QualityReport, weight float64) scoring.Component {
	score := 50
	markers := findProvenanceMarkers(root)

	if quality.HasManifest {
		score += 25
	}
	if len(markers) > 0 {
		score += 25
	}

	details := "Manifest: " + yesNo(quality.HasManifest)
	if len(markers) > 0 {
		details += ", Markers: " + strings.Join(markers, ", ")
	}

	var suggestions []string
	if score < 75 {
		suggestions = append(suggestions, "Add a dependency manifest and provenance attestations")
	}

	return scoring.Component{
		Name:        "Provenance",
		Score:       score,
		Weight:      weight,
		Details:     details,
		Suggestions: suggestions,
	}
}

// findProvenanceMarkers walks the project tree looking for attestation
// artifacts by file or directory name, returning the matched marker names
// sorted. Ignored directories are skipped the same way collection skips them.
func findProvenanceMarkers(root string) []string {
	found := make(map[string]bool)

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		name := strings.ToLower(d.Name())
		if d.IsDir() && path != root {
			for _, ignore := range collect.DefaultIgnoreDirs {
				if name == ignore {
					return fs.SkipDir
				}
			}
		}
		for _, marker := range provenanceMarkers {
			if strings.Contains(name, marker) {
				found[marker] = true
			}
		}
		return nil
	})

	markers := make([]string, 0, len(found))
	for marker := range found {
		markers = append(markers, marker)
	}
	sort.Strings(markers)
	return markers
}

// Summary renders the one-paragraph text verdict for a result, shared by
// the terminal renderer and the certify command.
func Summary(result *Result) string {
	trust := result.Trust
	return fmt.Sprintf("Trust score %d/100 (grade %s): %s",
		trust.Total, trust.Grade, scoring.GradeMessage(trust.Grade))
}
