// Package topics adds a file-backed help topic system to Cobra applications.
// Topic files placed in a directory become `help <name>` pages alongside the
// regular command help, so longer documentation can ship with the binary
// without being baked into Go source.
package topics

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is a single help page loaded from disk.
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures topic discovery and rendering.
type Options struct {
	// Extensions lists the file extensions treated as topic files.
	// Defaults to ".txt" and ".md".
	Extensions []string

	// Renderer formats topic content for display.
	// Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager loads help topics from a directory and serves them by name.
type Manager struct {
	dir          string
	topics       map[string]*Topic
	extensions   []string
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// New creates a Manager with default options.
func New(dir string) *Manager {
	return NewWithOptions(dir, Options{})
}

// NewWithOptions creates a Manager with the given options.
func NewWithOptions(dir string, opts Options) *Manager {
	m := &Manager{
		dir:        dir,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	return m
}

// scan loads every topic file under the manager's directory, including
// subdirectories. A missing directory is not an error; the application
// simply has no topics.
func (m *Manager) scan() error {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(m.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if !slices.Contains(m.extensions, ext) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		m.topics[name] = &Topic{
			Name:     name,
			FilePath: path,
			Content:  string(content),
		}

		return nil
	})
}

// Lookup finds a topic by name. Flag spellings are accepted: "--local" and
// "-local" resolve to the topic "local", falling back to "option-local" so
// per-flag help files can live next to general topics.
func (m *Manager) Lookup(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}

	topic, ok := m.topics["option-"+name]
	return topic, ok
}

// Names returns the names of all loaded topics, unsorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	return names
}

// render formats a topic through the configured renderer, keyed on the
// topic file's extension.
func (m *Manager) render(topic *Topic) string {
	return m.renderer.Render(topic.Content, filepath.Ext(topic.FilePath))
}
