package types

import "fmt"

// ModInfo holds the fields of a mod's info.json manifest that modpack
// cares about. Name and Version are required; the rest are carried along
// for display purposes.
type ModInfo struct {
	// Name is the mod's internal name
	Name string `json:"name"`

	// Version is the mod version string (e.g. "1.2.3")
	Version string `json:"version"`

	// Title is the human-readable mod title (optional)
	Title string `json:"title,omitempty"`

	// Author is the mod author (optional)
	Author string `json:"author,omitempty"`

	// FactorioVersion is the game version the mod targets (optional)
	FactorioVersion string `json:"factorio_version,omitempty"`
}

// BaseName returns the canonical "{name}_{version}" identifier used for
// both the staging directory and the archive's internal folder.
func (m ModInfo) BaseName() string {
	return fmt.Sprintf("%s_%s", m.Name, m.Version)
}

// ArchiveName returns the file name of the release archive.
func (m ModInfo) ArchiveName() string {
	return m.BaseName() + ".zip"
}
