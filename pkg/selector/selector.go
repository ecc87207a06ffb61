// Package selector matches the distribution list against a mod project
// and decides which files and directories are staged for packaging.
package selector

import (
	"os"
	"path/filepath"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Select checks each distribution list entry for existence under root,
// in list order. Entries that exist become selection items; entries that
// do not are recorded as missing. Missing entries are never an error;
// packaging proceeds with whatever is present.
func Select(fs types.FS, root string, include []string) types.Selection {
	logger := logging.GetLogger("selector")

	sel := types.Selection{Root: root}

	for _, entry := range include {
		path := filepath.Join(root, entry)

		info, err := fs.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				// Unreadable counts as absent, but the cause is worth a trace
				logger.Debug().Err(err).Str("entry", entry).Msg("Stat failed, treating as missing")
			}
			sel.Missing = append(sel.Missing, entry)
			continue
		}

		sel.Items = append(sel.Items, types.SelectionItem{
			Name:  entry,
			Path:  path,
			IsDir: info.IsDir(),
		})
		logger.Debug().Str("entry", entry).Bool("dir", info.IsDir()).Msg("Selected")
	}

	logger.Info().
		Int("selected", len(sel.Items)).
		Int("missing", len(sel.Missing)).
		Msg("Selection complete")

	return sel
}

// SelectGraphics builds the selection for graphics-only packaging. The
// manifest at manifestRel (relative to root) is staged as a top-level
// info.json, then the contents of each source directory are flattened
// into the selection in order. A name already selected is never
// replaced by a later source, so earlier directories win collisions.
// Source directories that do not exist are skipped silently.
func SelectGraphics(fs types.FS, root string, sources []string, manifestRel string) (types.Selection, error) {
	logger := logging.GetLogger("selector")

	sel := types.Selection{Root: root}
	taken := map[string]bool{}

	manifestPath := filepath.Join(root, filepath.FromSlash(manifestRel))
	sel.Items = append(sel.Items, types.SelectionItem{
		Name: "info.json",
		Path: manifestPath,
	})
	taken["info.json"] = true

	for _, source := range sources {
		dir := filepath.Join(root, source)

		if _, err := fs.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return types.Selection{}, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to access graphics directory %s", dir)
		}

		entries, err := fs.ReadDir(dir)
		if err != nil {
			return types.Selection{}, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to list graphics directory %s", dir)
		}

		for _, entry := range entries {
			name := entry.Name()
			if taken[name] {
				logger.Debug().Str("entry", name).Str("source", source).Msg("Skipping collision")
				continue
			}
			taken[name] = true

			sel.Items = append(sel.Items, types.SelectionItem{
				Name:  name,
				Path:  filepath.Join(dir, name),
				IsDir: entry.IsDir(),
			})
		}
	}

	logger.Info().Int("selected", len(sel.Items)).Msg("Graphics selection complete")

	return sel, nil
}
