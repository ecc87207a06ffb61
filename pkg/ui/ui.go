// Package ui provides a unified interface for rendering command output
// in different formats: styled terminal, plain text, and JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/soulcrysis/modpack/pkg/types"
	"github.com/soulcrysis/modpack/pkg/ui/json"
	"github.com/soulcrysis/modpack/pkg/ui/terminal"
	"github.com/soulcrysis/modpack/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders the outcome of a packaging run
	RenderResult(result *types.PackageResult) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for the given format. FormatAuto is
// resolved against the output's terminal capabilities.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
