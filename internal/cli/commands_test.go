// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem, cobra command execution
// PURPOSE: Exercise the CLI end to end: flag parsing, config layering, and full packaging runs

package cli

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProject creates a minimal mod project and returns its root.
func setupProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	testutil.CreateFile(t, root, "info.json", `{"name": "my-mod", "version": "1.2.3"}`)
	testutil.CreateFile(t, root, "data.lua", `require("prototypes.entity")`)
	testutil.CreateFile(t, root, "control.lua", "-- control stage")
	testutil.CreateFile(t, filepath.Join(root, "prototypes"), "entity.lua", "return {}")
	testutil.CreateFile(t, filepath.Join(root, "prototypes"), "notes.txt", "scratch notes")
	return root
}

// isolateState keeps log files, user config, and staging areas inside
// the test's temp directories.
func isolateState(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("MODPACK_CONFIG_DIR", t.TempDir())
	t.Setenv("MODPACK_STAGING_ROOT", filepath.Join(t.TempDir(), "staging"))
}

func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRootCommand_PackagesProject(t *testing.T) {
	root := setupProject(t)
	isolateState(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--local", "--root", root, "--format", "text", "-x", "txt"})
	require.NoError(t, cmd.Execute())

	archive := filepath.Join(root, "my-mod_1.2.3.zip")
	require.True(t, testutil.FileExists(t, archive))

	r, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "my-mod_1.2.3/info.json")
	assert.Contains(t, names, "my-mod_1.2.3/data.lua")
	assert.Contains(t, names, "my-mod_1.2.3/control.lua")
	assert.Contains(t, names, "my-mod_1.2.3/prototypes/entity.lua")
	assert.NotContains(t, names, "my-mod_1.2.3/prototypes/notes.txt")
}

func TestRootCommand_InstallDirOverride(t *testing.T) {
	root := setupProject(t)
	isolateState(t)
	mods := filepath.Join(t.TempDir(), "mods")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--root", root, "--install-dir", mods, "--format", "text"})
	require.NoError(t, cmd.Execute())

	assert.True(t, testutil.FileExists(t, filepath.Join(mods, "my-mod_1.2.3.zip")))
	testutil.AssertNoFile(t, filepath.Join(root, "my-mod_1.2.3.zip"))
}

func TestRootCommand_MissingManifestFails(t *testing.T) {
	root := t.TempDir()
	isolateState(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--local", "--root", root, "--format", "text"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestMissing))
}

func TestRootCommand_UnknownFlagFails(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--bogus"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestRootCommand_InvalidFormatFails(t *testing.T) {
	root := setupProject(t)
	isolateState(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--local", "--root", root, "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestVersionCommand(t *testing.T) {
	isolateState(t)

	out := captureStdout(t, func() {
		cmd := NewRootCmd()
		cmd.SetArgs([]string{"version"})
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, out, "modpack version")
}

func TestGenconfigCommand(t *testing.T) {
	isolateState(t)

	t.Run("prints_to_stdout", func(t *testing.T) {
		out := captureStdout(t, func() {
			cmd := NewRootCmd()
			cmd.SetArgs([]string{"genconfig"})
			require.NoError(t, cmd.Execute())
		})

		assert.Contains(t, out, "[pack]")
		assert.Contains(t, out, "# include")
	})

	t.Run("writes_project_file", func(t *testing.T) {
		root := t.TempDir()

		_ = captureStdout(t, func() {
			cmd := NewRootCmd()
			cmd.SetArgs([]string{"genconfig", "--write", "--root", root})
			require.NoError(t, cmd.Execute())
		})

		target := filepath.Join(root, "modpack.toml")
		require.True(t, testutil.FileExists(t, target))
		assert.Contains(t, testutil.ReadFile(t, target), "[pack]")
	})
}
