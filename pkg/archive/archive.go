// Package archive builds the zip file a packaged mod ships as. Every
// entry is rooted under a single internal folder named after the
// package identity, the layout the game loader expects when it reads
// a mod zip straight from the mods directory.
package archive

import (
	"archive/zip"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Create writes a zip archive of sourceDir to outputPath. Entries are
// placed under an internal folder named after sourceDir's base name and
// compressed with deflate. A partial archive is removed on failure.
func Create(fsys types.FS, sourceDir, outputPath string) error {
	logger := logging.GetLogger("archive")
	done := logging.LogOperationStart(logger, "archive")
	defer done()

	zipFile, err := fsys.Create(outputPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to create archive %s", outputPath)
	}
	zipWriter := zip.NewWriter(zipFile)

	prefix := filepath.Base(sourceDir)
	count, err := addTree(fsys, zipWriter, sourceDir, prefix)
	if err != nil {
		_ = zipWriter.Close()
		_ = zipFile.Close()
		_ = fsys.Remove(outputPath)
		return err
	}

	if err := zipWriter.Close(); err == nil {
		err = zipFile.Close()
	} else {
		_ = zipFile.Close()
	}
	if err != nil {
		_ = fsys.Remove(outputPath)
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to finalize archive %s", outputPath)
	}

	logger.Info().
		Str("path", outputPath).
		Str("prefix", prefix).
		Int("fileCount", count).
		Msg("Archive created")
	return nil
}

// addTree walks dir and adds its contents to the archive under zipDir,
// returning the number of files added. Zip paths always use forward
// slashes.
func addTree(fsys types.FS, w *zip.Writer, dir, zipDir string) (int, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to list %s", dir)
	}

	count := 0
	for _, entry := range entries {
		srcPath := filepath.Join(dir, entry.Name())
		zipPath := path.Join(zipDir, entry.Name())

		if entry.IsDir() {
			if _, err := w.Create(zipPath + "/"); err != nil {
				return count, errors.Wrapf(err, errors.ErrArchiveCreate,
					"failed to add directory entry %s", zipPath)
			}
			n, err := addTree(fsys, w, srcPath, zipPath)
			count += n
			if err != nil {
				return count, err
			}
			continue
		}

		if err := addFile(fsys, w, srcPath, zipPath, entry); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// addFile reads one file and writes it into the archive with its
// original permissions preserved in the header.
func addFile(fsys types.FS, w *zip.Writer, srcPath, zipPath string, entry fs.DirEntry) error {
	data, err := fsys.ReadFile(srcPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to read %s", srcPath)
	}

	info, err := entry.Info()
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to stat %s", srcPath)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to build header for %s", srcPath)
	}
	header.Name = zipPath
	header.Method = zip.Deflate

	writer, err := w.CreateHeader(header)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to add %s", zipPath)
	}
	if _, err := writer.Write(data); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveCreate,
			"failed to write %s", zipPath)
	}

	return nil
}
