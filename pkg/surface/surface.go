// Package surface defines output rendering for vouch scan results.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"io"

	"github.com/vouchdev/vouch/pkg/pipeline"
)

// Renderer produces formatted output from a scan result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *pipeline.Result) error
}

// ReportData holds the data needed to publish a certification report.
type ReportData struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`    // Markdown body
	Conclusion string `json:"conclusion"` // certified, review, rejected
}
