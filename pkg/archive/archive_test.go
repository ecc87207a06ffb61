// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (zip output is written to disk)
// PURPOSE: Verify archive layout, compression, and failure cleanup

package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulcrysis/modpack/pkg/archive"
	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/filesystem"
	"github.com/soulcrysis/modpack/pkg/testutil"
)

func TestCreate(t *testing.T) {
	fs := filesystem.NewOS()

	t.Run("roots_entries_under_internal_folder", func(t *testing.T) {
		root := t.TempDir()
		staged := testutil.CreateDir(t, root, "my-mod_1.0.0")
		testutil.CreateFile(t, staged, "info.json", `{"name": "my-mod", "version": "1.0.0"}`)
		testutil.CreateFile(t, staged, "control.lua", "-- control")
		testutil.CreateFile(t, filepath.Join(staged, "prototypes"), "entity.lua", "-- entity")
		testutil.CreateDir(t, staged, "locale")

		outPath := filepath.Join(root, "my-mod_1.0.0.zip")
		err := archive.Create(fs, staged, outPath)
		require.NoError(t, err)

		reader, err := zip.OpenReader(outPath)
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()

		names := entryNames(reader)
		assert.Contains(t, names, "my-mod_1.0.0/info.json")
		assert.Contains(t, names, "my-mod_1.0.0/control.lua")
		assert.Contains(t, names, "my-mod_1.0.0/prototypes/")
		assert.Contains(t, names, "my-mod_1.0.0/prototypes/entity.lua")
		assert.Contains(t, names, "my-mod_1.0.0/locale/")

		assert.Equal(t, "-- entity", readEntry(t, reader, "my-mod_1.0.0/prototypes/entity.lua"))
		assert.Equal(t, "-- control", readEntry(t, reader, "my-mod_1.0.0/control.lua"))
	})

	t.Run("compresses_file_entries", func(t *testing.T) {
		root := t.TempDir()
		staged := testutil.CreateDir(t, root, "tiny_0.0.1")
		testutil.CreateFile(t, staged, "data.lua", "-- data")

		outPath := filepath.Join(root, "tiny_0.0.1.zip")
		require.NoError(t, archive.Create(fs, staged, outPath))

		reader, err := zip.OpenReader(outPath)
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()

		for _, f := range reader.File {
			if f.Name == "tiny_0.0.1/data.lua" {
				assert.Equal(t, zip.Deflate, f.Method)
				return
			}
		}
		t.Fatal("data.lua entry not found in archive")
	})

	t.Run("replaces_existing_file_at_output_path", func(t *testing.T) {
		root := t.TempDir()
		staged := testutil.CreateDir(t, root, "my-mod_2.0.0")
		testutil.CreateFile(t, staged, "info.json", "{}")

		outPath := filepath.Join(root, "my-mod_2.0.0.zip")
		testutil.CreateFile(t, root, "my-mod_2.0.0.zip", "not a zip")

		require.NoError(t, archive.Create(fs, staged, outPath))

		reader, err := zip.OpenReader(outPath)
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()
		assert.Contains(t, entryNames(reader), "my-mod_2.0.0/info.json")
	})

	t.Run("writes_through_the_filesystem_seam", func(t *testing.T) {
		memfs := filesystem.NewMemoryFS()
		require.NoError(t, memfs.MkdirAll("/work/mem-mod_1.0.0", 0755))
		require.NoError(t, memfs.WriteFile("/work/mem-mod_1.0.0/info.json", []byte("{}"), 0644))

		outPath := "/work/mem-mod_1.0.0.zip"
		require.NoError(t, archive.Create(memfs, "/work/mem-mod_1.0.0", outPath))

		// The archive exists only on the in-memory filesystem
		data, err := memfs.ReadFile(outPath)
		require.NoError(t, err)

		reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		require.Len(t, reader.File, 1)
		assert.Equal(t, "mem-mod_1.0.0/info.json", reader.File[0].Name)
	})

	t.Run("missing_source_fails_and_leaves_no_archive", func(t *testing.T) {
		root := t.TempDir()
		outPath := filepath.Join(root, "gone_1.0.0.zip")

		err := archive.Create(fs, filepath.Join(root, "gone_1.0.0"), outPath)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveCreate))
		testutil.AssertNoFile(t, outPath)
	})
}

func entryNames(r *zip.ReadCloser) []string {
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func readEntry(t *testing.T, r *zip.ReadCloser, name string) string {
	t.Helper()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}

	t.Fatalf("entry not found in archive: %s", name)
	return ""
}
