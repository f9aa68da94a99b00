package scoring

import "fmt"

// DefaultBadgeStyle is the shields.io style used when none is configured.
const DefaultBadgeStyle = "flat"

// Badge is a rendered shields.io trust badge.
type Badge struct {
	Score    int    `json:"score"`
	Color    string `json:"color"`
	Style    string `json:"style"`
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// BadgeColor maps a score to its shields.io color name.
func BadgeColor(score int) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellowgreen"
	case score >= 60:
		return "yellow"
	case score >= 50:
		return "orange"
	default:
		return "red"
	}
}

// NewBadge renders the badge for a score. An empty style means the default.
func NewBadge(score int, style string) Badge {
	if style == "" {
		style = DefaultBadgeStyle
	}
	color := BadgeColor(score)
	url := fmt.Sprintf("https://img.shields.io/badge/Vouch_Trust_Score-%d%%2F100-%s?style=%s", score, color, style)
	return Badge{
		Score:    score,
		Color:    color,
		Style:    style,
		URL:      url,
		Markdown: fmt.Sprintf("[![Vouch Trust Score](%s)](https://vouch.dev/trust)", url),
	}
}
