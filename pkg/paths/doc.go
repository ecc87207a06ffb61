// Package paths provides centralized path handling for modpack.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the modpack codebase.
// It handles:
//
//   - Mod project root discovery and configuration
//   - Per-platform game mods directory resolution
//   - Staging area base directory placement
//   - XDG directory structure (config, state)
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - MODPACK_PROJECT_ROOT: Location of the mod project (default: cwd)
//   - MODPACK_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/modpack)
//   - APPDATA: Used on Windows to locate the game mods directory
//
// # Usage
//
//	import "github.com/soulcrysis/modpack/pkg/paths"
//
//	// Create a new Paths instance
//	p, err := paths.New("")  // Auto-detect project root
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get various paths
//	root := p.ProjectRoot()            // /home/user/my-mod
//	mods := p.InstallDir()             // /home/user/.factorio/mods
//	staging := p.StagingRoot()         // /tmp/modpack
package paths
