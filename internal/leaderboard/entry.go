// Package leaderboard implements the hall of shame: a public leaderboard of
// the worst-scoring scanned projects, backed by Postgres.
package leaderboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/vouchdev/vouch/pkg/pipeline"
)

// Shame categories.
const (
	CategoryBloatKing         = "bloat_king"
	CategorySecurityNightmare = "security_nightmare"
	CategorySpaghettiMaster   = "spaghetti_master"
	CategoryOverEngineer      = "over_engineer"
	CategoryLLMHallucinator   = "llm_hallucinator"
)

// Entry is one hall of shame record.
type Entry struct {
	ID          string    `json:"id"`
	RepoURL     string    `json:"repo_url"`
	RepoName    string    `json:"repo_name"`
	Score       int       `json:"score"`
	Grade       string    `json:"grade"`
	Category    string    `json:"category"`
	Remark      string    `json:"remark"`
	Highlights  []string  `json:"highlights"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// categoryRemarks holds the canned remarks shown next to an entry.
var categoryRemarks = map[string][]string{
	CategoryBloatKing: {
		"Imported the entire universe for a Hello World.",
		"This code is so heavy it needs its own gravitational field.",
	},
	CategorySecurityNightmare: {
		"So insecure that attackers use it as a tutorial.",
		"eval(), exec(), and hardcoded passwords in one repo.",
	},
	CategorySpaghettiMaster: {
		"More nesting than a Russian doll factory.",
		"The arrow anti-pattern has reached its final form here.",
	},
	CategoryOverEngineer: {
		"Built a spaceship to go to the grocery store.",
		"More design patterns than actual functionality.",
	},
	CategoryLLMHallucinator: {
		"Copy-pasted from a chatbot and shipped unread.",
		"'Sure, here is the code' is still in the docstring.",
	},
}

// Categorize determines the primary shame category for a scan result by
// scoring each category down from 100 and picking the worst.
func Categorize(result *pipeline.Result) string {
	scores := map[string]int{
		CategoryBloatKing:         100,
		CategorySecurityNightmare: 100,
		CategorySpaghettiMaster:   100,
		CategoryOverEngineer:      100,
		CategoryLLMHallucinator:   100,
	}

	if result.Bloat != nil {
		if result.Bloat.UnusedImports > 10 {
			scores[CategoryBloatKing] -= 30
		}
		scores[CategoryBloatKing] -= 20 * len(result.Bloat.HeavyDeps)
	}

	if result.Security != nil {
		scores[CategorySecurityNightmare] -= result.Security.CriticalCount * 25
		scores[CategorySecurityNightmare] -= result.Security.HighCount * 15
	}

	if result.Quality != nil {
		scores[CategorySpaghettiMaster] -= 20 * countSmells(result, "arrow_pattern")
		scores[CategoryOverEngineer] -= 15 * countSmells(result, "long_name")
		scores[CategoryLLMHallucinator] -= 25 * countSmells(result, "llm_artifact")
	}

	// Ties resolve in a fixed order so categorization is deterministic.
	order := []string{
		CategoryBloatKing,
		CategorySecurityNightmare,
		CategorySpaghettiMaster,
		CategoryOverEngineer,
		CategoryLLMHallucinator,
	}
	worst := order[0]
	for _, cat := range order[1:] {
		if scores[cat] < scores[worst] {
			worst = cat
		}
	}
	return worst
}

// Remark builds the entry's remark: a canned line for the category plus the
// concrete lowlights of this particular scan.
func Remark(result *pipeline.Result, category string) string {
	remarks, ok := categoryRemarks[category]
	if !ok {
		remarks = categoryRemarks[CategoryOverEngineer]
	}
	base := remarks[result.Trust.Total%len(remarks)]

	var extras []string
	if result.Bloat != nil && result.Bloat.UnusedImports > 5 {
		extras = append(extras, fmt.Sprintf("%d unused imports", result.Bloat.UnusedImports))
	}
	if result.Security != nil && result.Security.CriticalCount > 0 {
		extras = append(extras, fmt.Sprintf("%d critical vulnerabilities", result.Security.CriticalCount))
	}
	if countSmells(result, "llm_artifact") > 0 {
		extras = append(extras, "AI-generated code leftovers")
	}

	if len(extras) > 0 {
		return fmt.Sprintf("%s Bonus points for: %s.", base, strings.Join(extras, ", "))
	}
	return base
}

// Highlights picks up to five concrete findings for display: security issues
// first, then bloat, then quality smells.
func Highlights(result *pipeline.Result) []string {
	var highlights []string

	if result.Security != nil {
		for i, issue := range result.Security.Issues {
			if i == 3 {
				break
			}
			highlights = append(highlights, fmt.Sprintf("[%s] %s", strings.ToUpper(string(issue.Severity)), issue.Description))
		}
	}
	if result.Bloat != nil {
		for i, issue := range result.Bloat.Issues {
			if i == 2 {
				break
			}
			highlights = append(highlights, issue.Description)
		}
	}
	if result.Quality != nil {
		for i, issue := range result.Quality.Issues {
			if i == 2 {
				break
			}
			highlights = append(highlights, issue.Description)
		}
	}

	if len(highlights) > 5 {
		highlights = highlights[:5]
	}
	return highlights
}

// NewEntry builds a hall of shame entry from a scan result. The ID and
// submission time are assigned on insert.
func NewEntry(repoURL, repoName string, result *pipeline.Result) *Entry {
	category := Categorize(result)
	return &Entry{
		RepoURL:    repoURL,
		RepoName:   repoName,
		Score:      result.Trust.Total,
		Grade:      result.Trust.Grade,
		Category:   category,
		Remark:     Remark(result, category),
		Highlights: Highlights(result),
	}
}

func countSmells(result *pipeline.Result, category string) int {
	n := 0
	for _, issue := range result.Quality.Issues {
		if issue.Category == category {
			n++
		}
	}
	return n
}
