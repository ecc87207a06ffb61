// Package staging manages the transient directory a packaging run
// assembles its file tree in. An Area is scoped to one run: prepared
// empty, populated by copies, and removed again no matter how the run
// ends.
package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	synthfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Area is the staging directory for one packaging run, named after the
// package identity under a fixed staging root.
type Area struct {
	fs       types.FS
	root     string
	baseName string
	path     string
	logger   zerolog.Logger
}

// NewArea creates an Area handle for the given identity under root.
// Nothing is touched on disk until Prepare is called.
func NewArea(fs types.FS, root, baseName string) *Area {
	return &Area{
		fs:       fs,
		root:     root,
		baseName: baseName,
		path:     filepath.Join(root, baseName),
		logger:   logging.GetLogger("staging"),
	}
}

// Path returns the staging directory itself.
func (a *Area) Path() string {
	return a.path
}

// Root returns the directory containing the staging directory. The
// archive is first written here before deployment moves it away.
func (a *Area) Root() string {
	return a.root
}

// ArchivePath returns where the archive for this run is written before
// deployment.
func (a *Area) ArchivePath() string {
	return filepath.Join(a.root, a.baseName+".zip")
}

// Prepare creates the staging directory, removing anything a previous
// interrupted run with the same identity may have left behind.
func (a *Area) Prepare() error {
	// Self-clean leftovers: the directory and a half-written archive
	if _, err := a.fs.Stat(a.path); err == nil {
		a.logger.Warn().Str("path", a.path).Msg("Removing leftover staging directory")
		if err := a.fs.RemoveAll(a.path); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"failed to remove leftover staging directory %s", a.path)
		}
	}
	if _, err := a.fs.Stat(a.ArchivePath()); err == nil {
		a.logger.Warn().Str("path", a.ArchivePath()).Msg("Removing leftover archive")
		if err := a.fs.Remove(a.ArchivePath()); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"failed to remove leftover archive %s", a.ArchivePath())
		}
	}

	if err := a.fs.MkdirAll(a.path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create staging directory %s", a.path)
	}

	a.logger.Debug().Str("path", a.path).Msg("Staging directory ready")
	return nil
}

// Cleanup removes the staging directory and any archive still sitting
// next to it. It is best-effort: failures are logged, never returned,
// so a cleanup problem cannot mask the error that ended the run.
func (a *Area) Cleanup() {
	for _, target := range []string{a.path, a.ArchivePath()} {
		if _, err := a.fs.Stat(target); err != nil {
			continue
		}
		if err := a.fs.RemoveAll(target); err != nil {
			a.logger.Warn().Err(err).Str("path", target).Msg("Cleanup failed")
			continue
		}
		a.logger.Debug().Str("path", target).Msg("Cleaned up")
	}
}

// Stage copies every selection item into the area, preserving each
// item's internal structure, by building a synthfs operation pipeline
// and executing it against the real filesystem. Fails with CopyFailed
// on the first copy that cannot complete.
func (a *Area) Stage(sel types.Selection) error {
	done := logging.LogOperationStart(a.logger, "stage")
	defer done()

	var ops []synthfs.Operation
	for _, item := range sel.Items {
		itemOps, err := a.itemOperations(item)
		if err != nil {
			return err
		}
		ops = append(ops, itemOps...)
	}

	if len(ops) == 0 {
		a.logger.Info().Msg("Nothing to stage")
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range ops {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrCopyFailed,
				"failed to add operation to staging pipeline")
		}
	}

	executor := synthfs.NewExecutor()
	a.logger.Info().Int("operationCount", len(ops)).Msg("Copying selection into staging area")

	result := executor.Run(context.Background(), pipeline, synthfsfs.NewOSFileSystem("/"))
	if result.GetError() != nil {
		return errors.Wrapf(result.GetError(), errors.ErrCopyFailed,
			"failed to copy selection into staging area")
	}

	return nil
}

// itemOperations expands one selection item into synthfs operations:
// a single copy for files, or a directory tree of creates and copies.
func (a *Area) itemOperations(item types.SelectionItem) ([]synthfs.Operation, error) {
	dest := filepath.Join(a.path, item.Name)

	if !item.IsDir {
		op, err := copyOperation(item.Path, dest)
		if err != nil {
			return nil, err
		}
		return []synthfs.Operation{op}, nil
	}

	var ops []synthfs.Operation
	dirOp, err := createDirOperation(dest)
	if err != nil {
		return nil, err
	}
	ops = append(ops, dirOp)

	err = a.walkSource(item.Path, dest, &ops)
	if err != nil {
		return nil, err
	}
	return ops, nil
}

// walkSource descends into src, mirroring directories and queueing a
// copy for every file found.
func (a *Area) walkSource(src, dest string, ops *[]synthfs.Operation) error {
	entries, err := a.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "failed to list %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			dirOp, err := createDirOperation(destPath)
			if err != nil {
				return err
			}
			*ops = append(*ops, dirOp)

			if err := a.walkSource(srcPath, destPath, ops); err != nil {
				return err
			}
			continue
		}

		copyOp, err := copyOperation(srcPath, destPath)
		if err != nil {
			return err
		}
		*ops = append(*ops, copyOp)
	}

	return nil
}

// copyOperation builds a synthfs copy with paths made relative to the
// filesystem root, as synthfs expects.
func copyOperation(source, target string) (synthfs.Operation, error) {
	relSource, err := filepath.Rel("/", source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert source path: %s", source)
	}
	relTarget, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert target path: %s", target)
	}

	opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", filepath.Base(source), target))
	copyOp := operations.NewCopyOperation(opID, relTarget)
	copyOp.SetPaths(relSource, relTarget)

	return synthfs.NewOperationsPackageAdapter(copyOp), nil
}

// createDirOperation builds a synthfs directory create with the path
// made relative to the filesystem root.
func createDirOperation(target string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", target)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", target))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: os.FileMode(0755),
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}
