// Package deploy moves a finished archive into the directory the game
// loads mods from, replacing any previous build of the same package.
package deploy

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Result describes where the archive landed and how big it is.
type Result struct {
	// Path is the final archive location.
	Path string
	// Size is the archive size in bytes.
	Size int64
}

// HumanSize renders the archive size in binary units.
func (r *Result) HumanSize() string {
	return humanize.IBytes(uint64(r.Size))
}

// CleanDestination removes a stale archive with the given name from
// destDir, so a failed run cannot leave an old build looking current.
// A missing destination or archive is not an error.
func CleanDestination(fsys types.FS, destDir, archiveName string) error {
	logger := logging.GetLogger("deploy")
	dest := filepath.Join(destDir, archiveName)

	if _, err := fsys.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to check destination %s", dest)
	}

	logger.Warn().Str("path", dest).Msg("Removing stale archive from destination")
	if err := fsys.Remove(dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to remove stale archive %s", dest)
	}
	return nil
}

// Deploy moves archivePath into destDir, creating the directory if it
// does not exist and replacing any archive of the same name. The
// archive must be present at its new location afterwards, otherwise
// the move counts as failed.
func Deploy(fsys types.FS, archivePath, destDir string) (*Result, error) {
	logger := logging.GetLogger("deploy")
	done := logging.LogOperationStart(logger, "deploy")
	defer done()

	if err := fsys.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create destination directory %s", destDir)
	}

	dest := filepath.Join(destDir, filepath.Base(archivePath))
	if _, err := fsys.Stat(dest); err == nil {
		logger.Debug().Str("path", dest).Msg("Replacing existing archive")
		if err := fsys.Remove(dest); err != nil {
			return nil, errors.Wrapf(err, errors.ErrMoveFailed,
				"failed to replace existing archive %s", dest)
		}
	}

	if err := moveFile(fsys, archivePath, dest); err != nil {
		return nil, err
	}

	// The move only counts once the archive is really there
	info, err := fsys.Stat(dest)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMoveFailed,
			"archive not found at destination %s after move", dest)
	}

	result := &Result{Path: dest, Size: info.Size()}
	logger.Info().
		Str("path", result.Path).
		Str("size", result.HumanSize()).
		Msg("Archive deployed")
	return result, nil
}

// moveFile renames source to dest, falling back to copy and remove
// when rename fails across filesystem boundaries.
func moveFile(fsys types.FS, source, dest string) error {
	if err := fsys.Rename(source, dest); err == nil {
		return nil
	}

	data, err := fsys.ReadFile(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMoveFailed,
			"failed to read archive %s", source)
	}
	if err := fsys.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrMoveFailed,
			"failed to write archive %s", dest)
	}
	if err := fsys.Remove(source); err != nil {
		return errors.Wrapf(err, errors.ErrMoveFailed,
			"failed to remove archive %s after copy", source)
	}
	return nil
}
