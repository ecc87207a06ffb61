// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (synthfs executes against the OS)
// PURPOSE: Verify staging area lifecycle and selection copying

package staging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/filesystem"
	"github.com/soulcrysis/modpack/pkg/staging"
	"github.com/soulcrysis/modpack/pkg/testutil"
	"github.com/soulcrysis/modpack/pkg/types"
)

func TestNewArea(t *testing.T) {
	fs := filesystem.NewOS()
	area := staging.NewArea(fs, "/tmp/modpack", "my-mod_1.2.3")

	assert.Equal(t, "/tmp/modpack/my-mod_1.2.3", area.Path())
	assert.Equal(t, "/tmp/modpack", area.Root())
	assert.Equal(t, "/tmp/modpack/my-mod_1.2.3.zip", area.ArchivePath())
}

func TestArea_Prepare(t *testing.T) {
	fs := filesystem.NewOS()

	t.Run("creates_staging_directory", func(t *testing.T) {
		root := t.TempDir()
		area := staging.NewArea(fs, root, "my-mod_1.0.0")

		err := area.Prepare()
		require.NoError(t, err)

		assert.True(t, testutil.DirExists(t, area.Path()))
	})

	t.Run("removes_leftover_directory", func(t *testing.T) {
		root := t.TempDir()
		area := staging.NewArea(fs, root, "my-mod_1.0.0")

		// Leftover from an interrupted run
		leftover := testutil.CreateDir(t, root, "my-mod_1.0.0")
		testutil.CreateFile(t, leftover, "stale.lua", "-- stale")

		err := area.Prepare()
		require.NoError(t, err)

		assert.True(t, testutil.DirExists(t, area.Path()))
		testutil.AssertNoFile(t, filepath.Join(area.Path(), "stale.lua"))
	})

	t.Run("removes_leftover_archive", func(t *testing.T) {
		root := t.TempDir()
		area := staging.NewArea(fs, root, "my-mod_1.0.0")

		testutil.CreateFile(t, root, "my-mod_1.0.0.zip", "stale bytes")

		err := area.Prepare()
		require.NoError(t, err)

		testutil.AssertNoFile(t, area.ArchivePath())
	})
}

func TestArea_Stage(t *testing.T) {
	fs := filesystem.NewOS()

	t.Run("copies_files_and_directories", func(t *testing.T) {
		project := testutil.SetupTestProject(t, "my-mod", "1.0.0")
		project.AddFile(t, "control.lua", "-- control")
		project.AddFile(t, "prototypes/entity.lua", "-- entity")
		project.AddFile(t, "prototypes/items/gear.lua", "-- gear")
		project.AddDir(t, "locale/en")
		project.AddFile(t, "locale/en/base.cfg", "[item-name]")

		sel := types.Selection{
			Root: project.Root,
			Items: []types.SelectionItem{
				{Name: "info.json", Path: filepath.Join(project.Root, "info.json")},
				{Name: "control.lua", Path: filepath.Join(project.Root, "control.lua")},
				{Name: "prototypes", Path: filepath.Join(project.Root, "prototypes"), IsDir: true},
				{Name: "locale", Path: filepath.Join(project.Root, "locale"), IsDir: true},
			},
		}

		area := staging.NewArea(fs, t.TempDir(), project.BaseName())
		require.NoError(t, area.Prepare())
		defer area.Cleanup()

		err := area.Stage(sel)
		require.NoError(t, err)

		testutil.AssertFileContent(t, filepath.Join(area.Path(), "control.lua"), "-- control")
		testutil.AssertFileContent(t, filepath.Join(area.Path(), "prototypes", "entity.lua"), "-- entity")
		testutil.AssertFileContent(t, filepath.Join(area.Path(), "prototypes", "items", "gear.lua"), "-- gear")
		testutil.AssertFileContent(t, filepath.Join(area.Path(), "locale", "en", "base.cfg"), "[item-name]")
		assert.True(t, testutil.FileExists(t, filepath.Join(area.Path(), "info.json")))
	})

	t.Run("renames_item_on_copy", func(t *testing.T) {
		// Graphics mode copies graphics/info.json to a top-level info.json
		project := testutil.SetupTestProject(t, "my-mod-graphics", "1.0.0")
		project.AddFile(t, "graphics/info.json", testutil.ManifestJSON("my-mod-graphics", "1.0.0"))
		project.AddDir(t, "graphics/icons")
		project.AddFile(t, "graphics/icons/gear.png", "png bytes")

		sel := types.Selection{
			Root: project.Root,
			Items: []types.SelectionItem{
				{Name: "info.json", Path: filepath.Join(project.Root, "graphics", "info.json")},
				{Name: "icons", Path: filepath.Join(project.Root, "graphics", "icons"), IsDir: true},
			},
		}

		area := staging.NewArea(fs, t.TempDir(), project.BaseName())
		require.NoError(t, area.Prepare())
		defer area.Cleanup()

		err := area.Stage(sel)
		require.NoError(t, err)

		assert.True(t, testutil.FileExists(t, filepath.Join(area.Path(), "info.json")))
		testutil.AssertFileContent(t, filepath.Join(area.Path(), "icons", "gear.png"), "png bytes")
	})

	t.Run("empty_selection_is_a_no_op", func(t *testing.T) {
		area := staging.NewArea(fs, t.TempDir(), "empty_0.0.1")
		require.NoError(t, area.Prepare())
		defer area.Cleanup()

		err := area.Stage(types.Selection{})
		require.NoError(t, err)
	})

	t.Run("missing_source_fails_with_copy_error", func(t *testing.T) {
		project := testutil.SetupTestProject(t, "broken", "1.0.0")

		sel := types.Selection{
			Root: project.Root,
			Items: []types.SelectionItem{
				{Name: "control.lua", Path: filepath.Join(project.Root, "control.lua")},
			},
		}

		area := staging.NewArea(fs, t.TempDir(), project.BaseName())
		require.NoError(t, area.Prepare())
		defer area.Cleanup()

		err := area.Stage(sel)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
	})
}

func TestArea_Cleanup(t *testing.T) {
	fs := filesystem.NewOS()

	t.Run("removes_directory_and_archive", func(t *testing.T) {
		root := t.TempDir()
		area := staging.NewArea(fs, root, "my-mod_1.0.0")
		require.NoError(t, area.Prepare())

		testutil.CreateFile(t, area.Path(), "data.lua", "-- data")
		testutil.CreateFile(t, root, "my-mod_1.0.0.zip", "zip bytes")

		area.Cleanup()

		assert.False(t, testutil.DirExists(t, area.Path()))
		testutil.AssertNoFile(t, area.ArchivePath())
	})

	t.Run("tolerates_nothing_to_clean", func(t *testing.T) {
		area := staging.NewArea(fs, filepath.Join(t.TempDir(), "never-made"), "gone_0.0.1")
		area.Cleanup()
	})

	t.Run("leaves_root_in_place", func(t *testing.T) {
		root := t.TempDir()
		area := staging.NewArea(fs, root, "my-mod_1.0.0")
		require.NoError(t, area.Prepare())
		area.Cleanup()

		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
