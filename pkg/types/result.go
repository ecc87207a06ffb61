package types

// PackageResult describes the outcome of a packaging run.
type PackageResult struct {
	// Mod is the manifest metadata the run was built from
	Mod ModInfo `json:"mod"`

	// Phase is the phase the run ended in
	Phase Phase `json:"phase"`

	// ArchivePath is the final location of the release archive
	ArchivePath string `json:"archivePath,omitempty"`

	// ArchiveSize is the size of the archive in bytes
	ArchiveSize int64 `json:"archiveSize,omitempty"`

	// LocalDeploy reports whether the archive stayed in the project
	// directory instead of being installed into the game's mods dir
	LocalDeploy bool `json:"localDeploy"`

	// Warnings collects non-fatal issues, such as distribution list
	// entries that were not present in the project
	Warnings []string `json:"warnings,omitempty"`
}
