// Package manifest reads mod metadata from info.json files.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Read loads and validates the manifest at the given path. The returned
// ModInfo carries the manifest's literal string values; nothing is
// normalized or rewritten. Fields other than the ones modpack cares
// about are ignored.
func Read(fs types.FS, path string) (types.ModInfo, error) {
	logger := logging.GetLogger("manifest")

	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return types.ModInfo{}, errors.Newf(errors.ErrManifestMissing,
				"manifest not found at %s", path)
		}
		return types.ModInfo{}, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to access manifest at %s", path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return types.ModInfo{}, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read manifest at %s", path)
	}

	var info types.ModInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return types.ModInfo{}, errors.Wrapf(err, errors.ErrManifestMalformed,
			"failed to parse manifest at %s", path)
	}

	if info.Name == "" {
		return types.ModInfo{}, errors.Newf(errors.ErrManifestMalformed,
			"manifest at %s has no name", path)
	}
	if info.Version == "" {
		return types.ModInfo{}, errors.Newf(errors.ErrManifestMalformed,
			"manifest at %s has no version", path)
	}

	logger.Debug().
		Str("name", info.Name).
		Str("version", info.Version).
		Msg("Manifest read")

	return info, nil
}
