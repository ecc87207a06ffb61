// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/soulcrysis/modpack/pkg/types"
)

// Renderer writes packaging output as JSON for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult renders a packaging run's outcome as JSON
func (r *Renderer) RenderResult(result *types.PackageResult) error {
	return r.encoder.Encode(result)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
