package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats raw topic content for terminal display. The format
// argument is the topic file's extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

// Render returns the content as-is.
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics with the glamour library.
// Topics in any other format pass through untouched.
type GlamourRenderer struct {
	Style string // glamour style name or path, "auto" detects from the terminal
	Width int    // wrap width, 0 leaves wrapping to glamour
}

// NewGlamourRenderer creates a markdown renderer with terminal auto-detection.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output, falling back to the
// raw content when glamour cannot render it.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var opts []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		opts = append(opts, glamour.WithStylePath(r.Style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
