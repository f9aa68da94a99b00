package analyze

import (
	"context"
	"math"
	"time"
)

// similarityThreshold is the inclusive cutoff for reporting a signature.
const similarityThreshold = 0.40

// defaultRegistryTimeout bounds the optional remote lookup.
const defaultRegistryTimeout = 5 * time.Second

// SignatureMatch is a known project the scanned code resembles.
type SignatureMatch struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Suggestion  string  `json:"suggestion"`
	Similarity  float64 `json:"similarity"`
}

// DuplicateReport is the duplicate/intent analyzer's output.
type DuplicateReport struct {
	IntentHash string           `json:"intent_hash"`
	Matches    []SignatureMatch `json:"matches"`
	Score      int              `json:"score"`
}

// RegistryClient is the optional remote lookup. Implementations may return
// additional similarity candidates or fail; failure never changes the local
// result.
type RegistryClient interface {
	Lookup(ctx context.Context, fp *Fingerprint) ([]SignatureMatch, error)
}

// DuplicateAnalyzer fingerprints the project and matches it against the
// known-signature registry, optionally augmented by a remote registry.
type DuplicateAnalyzer struct {
	// Registry, when non-nil, is consulted after local matching. Its
	// absence or failure only means no additional matches.
	Registry RegistryClient

	// RegistryTimeout bounds the remote lookup. Zero means the default.
	RegistryTimeout time.Duration
}

// Scan builds the intent fingerprint and computes the uniqueness score.
func (a *DuplicateAnalyzer) Scan(ctx context.Context, root string, files []string) (*DuplicateReport, error) {
	fp, err := BuildFingerprint(ctx, root, files)
	if err != nil {
		return nil, err
	}

	report := &DuplicateReport{IntentHash: fp.Hash()}

	for _, sig := range knownSignatures {
		matched := 0
		for _, kw := range sig.Keywords {
			if fp.Contains(kw) {
				matched++
			}
		}
		similarity := float64(matched) / float64(len(sig.Keywords))
		if similarity >= similarityThreshold {
			report.Matches = append(report.Matches, SignatureMatch{
				Name:        sig.Name,
				Description: sig.Description,
				URL:         sig.URL,
				Suggestion:  sig.Suggestion,
				Similarity:  similarity,
			})
		}
	}

	a.lookupRemote(ctx, fp, report)

	report.Score = uniquenessScore(report.Matches)
	return report, nil
}

// lookupRemote consults the optional remote registry. Errors and timeouts
// are swallowed: the scan proceeds on local heuristics alone.
func (a *DuplicateAnalyzer) lookupRemote(ctx context.Context, fp *Fingerprint, report *DuplicateReport) {
	if a.Registry == nil {
		return
	}
	timeout := a.RegistryTimeout
	if timeout <= 0 {
		timeout = defaultRegistryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	matches, err := a.Registry.Lookup(ctx, fp)
	if err != nil {
		return
	}
	for _, m := range matches {
		if m.Similarity >= similarityThreshold {
			report.Matches = append(report.Matches, m)
		}
	}
}

// uniquenessScore derives the score from the maximum observed similarity:
// round(100 * (1 - max)), or 100 when nothing matched.
func uniquenessScore(matches []SignatureMatch) int {
	if len(matches) == 0 {
		return 100
	}
	max := 0.0
	for _, m := range matches {
		if m.Similarity > max {
			max = m.Similarity
		}
	}
	return clampScore(int(math.Round(100 * (1 - max))))
}
