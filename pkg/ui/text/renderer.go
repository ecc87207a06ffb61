// Package text provides plain output without any styling, for pipes
// and colorless terminals.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/soulcrysis/modpack/pkg/types"
)

// Renderer writes unstyled packaging output
type Renderer struct {
	output io.Writer
}

// New creates a plain text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a packaging run's outcome as plain text
func (r *Renderer) RenderResult(result *types.PackageResult) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Packaged %s %s\n", result.Mod.Name, result.Mod.Version))
	b.WriteString(fmt.Sprintf("archive: %s (%s)\n",
		result.ArchivePath, humanize.IBytes(uint64(result.ArchiveSize))))

	if result.LocalDeploy {
		b.WriteString("deployed next to the project\n")
	}

	for _, warning := range result.Warnings {
		b.WriteString("warning: " + warning + "\n")
	}

	_, err := fmt.Fprint(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
