// Package exclusion strips unwanted files from a staged file tree
// based on a normalized set of file extensions.
package exclusion

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Set holds excluded file extensions, stored without the leading dot.
// Matching is case-sensitive: "psd" matches "art.psd" but not "art.PSD".
type Set map[string]bool

// NewSet builds the exclusion set from the built-in defaults and a
// user-supplied comma-separated list. Each user token is trimmed of
// surrounding whitespace; empty tokens are ignored. The result is the
// union of both sources.
func NewSet(builtin []string, extra string) Set {
	set := make(Set, len(builtin))

	for _, ext := range builtin {
		if ext != "" {
			set[ext] = true
		}
	}

	for _, token := range strings.Split(extra, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			set[token] = true
		}
	}

	return set
}

// Matches reports whether the file name ends in ".{ext}" for any
// extension in the set.
func (s Set) Matches(name string) bool {
	for ext := range s {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}

// Extensions returns the set's contents in sorted order, for display.
func (s Set) Extensions() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Apply walks the tree under root and removes every file the set
// matches. Directories are never removed, only descended into. The
// returned paths are relative to root, in walk order. Applying the
// same set twice removes nothing the second time.
func Apply(fs types.FS, root string, set Set) ([]string, error) {
	logger := logging.GetLogger("exclusion")

	if len(set) == 0 {
		return nil, nil
	}

	var removed []string
	err := walk(fs, root, "", set, &removed)
	if err != nil {
		return removed, err
	}

	logger.Info().
		Int("removed", len(removed)).
		Strs("extensions", set.Extensions()).
		Msg("Exclusion filter applied")

	return removed, nil
}

func walk(fs types.FS, root, rel string, set Set, removed *[]string) error {
	logger := logging.GetLogger("exclusion")

	dir := filepath.Join(root, rel)
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir)
	}

	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := walk(fs, root, entryRel, set, removed); err != nil {
				return err
			}
			continue
		}

		if !set.Matches(entry.Name()) {
			continue
		}

		if err := fs.Remove(filepath.Join(root, entryRel)); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", entryRel)
		}
		logger.Debug().Str("file", entryRel).Msg("Removed excluded file")
		*removed = append(*removed, entryRel)
	}

	return nil
}
