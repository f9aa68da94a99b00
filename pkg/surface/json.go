package surface

import (
	"encoding/json"
	"io"

	"github.com/vouchdev/vouch/pkg/pipeline"
)

// JSONRenderer marshals a scan result to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
