package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestProject represents a mod project laid out on a temp directory
type TestProject struct {
	Root string // Project root directory
	Name string // Mod name from the manifest
	Ver  string // Mod version from the manifest
}

// SetupTestProject creates a mod project directory with a valid
// info.json for the given name and version.
func SetupTestProject(t *testing.T, name, version string) *TestProject {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(root, 0755))

	tp := &TestProject{
		Root: root,
		Name: name,
		Ver:  version,
	}
	tp.AddFile(t, "info.json", ManifestJSON(name, version))

	return tp
}

// ManifestJSON returns a minimal valid info.json document.
func ManifestJSON(name, version string) string {
	return fmt.Sprintf(`{"name": %q, "version": %q, "title": "Test Mod", "author": "tester"}`, name, version)
}

// BaseName returns the "{name}_{version}" identity of the project.
func (tp *TestProject) BaseName() string {
	return fmt.Sprintf("%s_%s", tp.Name, tp.Ver)
}

// AddFile adds a file to the project, creating parent directories as
// needed. The path is relative to the project root.
func (tp *TestProject) AddFile(t *testing.T, relPath, content string) string {
	t.Helper()

	path := filepath.Join(tp.Root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// AddDir adds an empty directory to the project.
func (tp *TestProject) AddDir(t *testing.T, relPath string) string {
	t.Helper()

	path := filepath.Join(tp.Root, relPath)
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}
