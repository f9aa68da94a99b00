// Package scoring implements the vouch trust scoring engine. It aggregates
// analyzer component scores into a weighted total with a letter grade, a
// certification decision, and a rendered badge.
package scoring

// CertifyThreshold is the default minimum total score for certification.
const CertifyThreshold = 70

// Component is one analyzer's contribution to the trust score.
// Immutable once added.
type Component struct {
	Name        string   `json:"name"`
	Score       int      `json:"score"`  // clamped to [0, 100]
	Weight      float64  `json:"weight"` // relative weight within the total
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Weights holds the relative component weights used by the aggregator.
type Weights struct {
	Quality    float64 `json:"quality" yaml:"quality"`
	Security   float64 `json:"security" yaml:"security"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
	Uniqueness float64 `json:"uniqueness" yaml:"uniqueness"`
	Provenance float64 `json:"provenance" yaml:"provenance"`
}

// DefaultWeights returns the standard component weights.
func DefaultWeights() Weights {
	return Weights{
		Quality:    0.25,
		Security:   0.25,
		Efficiency: 0.20,
		Uniqueness: 0.15,
		Provenance: 0.15,
	}
}

// TrustScore is the complete aggregated result for one project scan.
type TrustScore struct {
	Components []Component `json:"components"`
	Total      int         `json:"total"` // weighted average, truncated
	Grade      string      `json:"grade"` // A, B, C, D, F
	Certified  bool        `json:"certified"`

	threshold int
}

// NewTrustScore returns an empty score with the given certification
// threshold. A threshold <= 0 means the default. An empty score totals 0 and
// grades F.
func NewTrustScore(threshold int) *TrustScore {
	if threshold <= 0 {
		threshold = CertifyThreshold
	}
	return &TrustScore{Grade: "F", threshold: threshold}
}

// AddComponent records a component and synchronously recomputes the total,
// grade, and certification. Scores outside [0, 100] are clamped.
func (ts *TrustScore) AddComponent(c Component) {
	if c.Score < 0 {
		c.Score = 0
	}
	if c.Score > 100 {
		c.Score = 100
	}
	ts.Components = append(ts.Components, c)
	ts.recompute()
}

func (ts *TrustScore) recompute() {
	var weighted, total float64
	for _, c := range ts.Components {
		weighted += float64(c.Score) * c.Weight
		total += c.Weight
	}
	if total == 0 {
		ts.Total = 0
	} else {
		ts.Total = int(weighted / total)
	}
	ts.Grade = GradeFromScore(ts.Total)
	ts.Certified = ts.Total >= ts.threshold
}

// GradeFromScore maps a total score to a letter grade.
func GradeFromScore(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	case score >= 25:
		return "D"
	default:
		return "F"
	}
}

// GradeMessage returns the one-line verdict shown next to the grade.
func GradeMessage(grade string) string {
	switch grade {
	case "A":
		return "Excellent - this project earns its trust"
	case "B":
		return "Good - minor issues worth fixing"
	case "C":
		return "Fair - needs attention before relying on it"
	case "D":
		return "Poor - significant problems found"
	default:
		return "Failing - do not trust this project yet"
	}
}
