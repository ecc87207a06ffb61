// Package style defines the visual styling for modpack's terminal
// output. Styles carry semantic names and adaptive colors that adjust
// to light and dark terminal themes, loaded from an embedded YAML
// sheet so every command renders with the same palette.
package style

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition in YAML
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Sheet is the complete styles configuration
type Sheet struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedSheet []byte

// registry maps semantic names to built lipgloss styles
var registry map[string]lipgloss.Style

func init() {
	if err := Load(embeddedSheet); err != nil {
		// The embedded sheet is compiled in; a parse failure means a
		// broken build, but output should still work unstyled.
		initFallbackStyles()
	}
}

// Load replaces the style registry with the definitions in the given
// YAML sheet.
func Load(data []byte) error {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return fmt.Errorf("failed to parse style sheet: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor)
	for name, def := range sheet.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	built := make(map[string]lipgloss.Style)
	for name, def := range sheet.Styles {
		built[name] = buildStyle(def, colors)
	}

	registry = built
	return nil
}

// initFallbackStyles fills the registry with unstyled entries so
// rendering never crashes on a missing style.
func initFallbackStyles() {
	registry = make(map[string]lipgloss.Style)
	for _, name := range []string{
		"Header", "Success", "Error", "Warning", "Muted",
		"ModName", "FilePath", "Size",
	} {
		registry[name] = lipgloss.NewStyle()
	}
}

// buildStyle constructs a lipgloss style from a definition
func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	s := lipgloss.NewStyle()

	if def.Bold {
		s = s.Bold(true)
	}
	if def.Italic {
		s = s.Italic(true)
	}
	if def.Underline {
		s = s.Underline(true)
	}

	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			s = s.Foreground(color)
		}
	}
	if def.Background != "" {
		if color, ok := colors[def.Background]; ok {
			s = s.Background(color)
		}
	}

	if def.PaddingLeft > 0 {
		s = s.PaddingLeft(def.PaddingLeft)
	}

	return s
}

// Get retrieves a style from the registry by its semantic name. An
// unknown name yields an unstyled default so callers need no checks.
func Get(name string) lipgloss.Style {
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Names returns the semantic names the registry currently holds.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
