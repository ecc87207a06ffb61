// Package terminal provides styled output for capable terminals.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/soulcrysis/modpack/pkg/style"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Renderer writes styled packaging output
type Renderer struct {
	output io.Writer
}

// New creates a terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a packaging run's outcome with styling
func (r *Renderer) RenderResult(result *types.PackageResult) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		style.Get("Success").Render("✓ Packaged"),
		style.Get("ModName").Render(result.Mod.Name),
		style.Get("Header").Render(result.Mod.Version)))

	b.WriteString(fmt.Sprintf("  %s %s\n",
		style.Get("FilePath").Render(result.ArchivePath),
		style.Get("Size").Render("("+humanize.IBytes(uint64(result.ArchiveSize))+")")))

	if result.LocalDeploy {
		b.WriteString("  " + style.Get("Muted").Render("deployed next to the project") + "\n")
	}

	for _, warning := range result.Warnings {
		b.WriteString("  " + pterm.Warning.Sprint(warning) + "\n")
	}

	_, err := fmt.Fprint(r.output, b.String())
	return err
}

// RenderError renders an error with the pterm error prefix
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintln(r.output, pterm.Error.Sprint(err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
