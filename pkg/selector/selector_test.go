// pkg/selector/selector_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test distribution list matching and graphics flattening

package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulcrysis/modpack/pkg/filesystem"
	"github.com/soulcrysis/modpack/pkg/selector"
	"github.com/soulcrysis/modpack/pkg/types"
)

func write(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

func TestSelect(t *testing.T) {
	t.Run("present_entries_in_list_order", func(t *testing.T) {
		fs := filesystem.NewMemoryFS()
		write(t, fs, "/mod/info.json", `{}`)
		write(t, fs, "/mod/control.lua", "-- control")
		write(t, fs, "/mod/prototypes/items.lua", "-- items")
		write(t, fs, "/mod/locale/en/locale.cfg", "[item-name]")
		write(t, fs, "/mod/notes.txt", "not in the list")

		include := []string{"info.json", "data.lua", "control.lua", "prototypes", "locale"}
		sel := selector.Select(fs, "/mod", include)

		assert.Equal(t, []string{"info.json", "control.lua", "prototypes", "locale"}, sel.Names())
		assert.Equal(t, []string{"data.lua"}, sel.Missing)

		// Directories are flagged
		assert.False(t, sel.Items[0].IsDir)
		assert.True(t, sel.Items[2].IsDir)
		assert.Equal(t, "/mod/prototypes", sel.Items[2].Path)
	})

	t.Run("all_missing_still_succeeds", func(t *testing.T) {
		fs := filesystem.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/mod", 0755))

		sel := selector.Select(fs, "/mod", []string{"info.json", "graphics"})

		assert.Empty(t, sel.Items)
		assert.Equal(t, []string{"info.json", "graphics"}, sel.Missing)
	})

	t.Run("empty_include_list", func(t *testing.T) {
		fs := filesystem.NewMemoryFS()
		sel := selector.Select(fs, "/mod", nil)

		assert.Empty(t, sel.Items)
		assert.Empty(t, sel.Missing)
	})
}

func TestSelectGraphics(t *testing.T) {
	t.Run("flattens_sources_with_manifest_first", func(t *testing.T) {
		fs := filesystem.NewMemoryFS()
		write(t, fs, "/mod/graphics/info.json", `{"name":"gfx"}`)
		write(t, fs, "/mod/graphics/icons/iron.png", "png")
		write(t, fs, "/mod/graphics/entities/belt.png", "png")

		sel, err := selector.SelectGraphics(fs, "/mod", []string{"graphics", "graphic"}, "graphics/info.json")
		require.NoError(t, err)

		names := sel.Names()
		assert.Equal(t, "info.json", names[0])
		assert.Contains(t, names, "icons")
		assert.Contains(t, names, "entities")

		// The manifest item points into the graphics directory
		assert.Equal(t, "/mod/graphics/info.json", sel.Items[0].Path)

		// The source's own info.json is not selected twice
		count := 0
		for _, n := range names {
			if n == "info.json" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("earlier_source_wins_collisions", func(t *testing.T) {
		fs := filesystem.NewMemoryFS()
		write(t, fs, "/mod/graphics/info.json", `{"name":"gfx"}`)
		write(t, fs, "/mod/graphics/icons/a.png", "new")
		write(t, fs, "/mod/graphic/icons/old.png", "legacy")
		write(t, fs, "/mod/graphic/extra/misc.png", "legacy only")

		sel, err := selector.SelectGraphics(fs, "/mod", []string{"graphics", "graphic"}, "graphics/info.json")
		require.NoError(t, err)

		var iconsPath string
		for _, item := range sel.Items {
			if item.Name == "icons" {
				iconsPath = item.Path
			}
		}
		assert.Equal(t, "/mod/graphics/icons", iconsPath, "graphics/ should win over graphic/")

		assert.Contains(t, sel.Names(), "extra")
	})

	t.Run("missing_sources_skipped_silently", func(t *testing.T) {
		fs := filesystem.NewMemoryFS()
		write(t, fs, "/mod/graphics/info.json", `{"name":"gfx"}`)
		write(t, fs, "/mod/graphics/icons/a.png", "png")

		sel, err := selector.SelectGraphics(fs, "/mod", []string{"graphics", "graphic"}, "graphics/info.json")
		require.NoError(t, err)

		assert.Empty(t, sel.Missing)
		assert.Equal(t, []string{"info.json", "icons"}, sel.Names())
	})
}
