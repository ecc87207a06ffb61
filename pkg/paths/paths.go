package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/logging"
)

// Environment variable names
const (
	// EnvProjectRoot is the primary environment variable for the mod project location
	EnvProjectRoot = "MODPACK_PROJECT_ROOT"

	// EnvConfigDir overrides the XDG config directory for modpack
	EnvConfigDir = "MODPACK_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Well-known file and directory names. These are conventions of the game
// and of modpack itself, not user configuration.
const (
	// ManifestName is the manifest file read from the project root
	ManifestName = "info.json"

	// ModpackDirName is the directory name for modpack-specific files
	ModpackDirName = "modpack"
)

// Paths provides centralized path management for modpack
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ManifestPath() string
	InstallDir() string
	StagingRoot() string
	ConfigDir() string
	StateDir() string
}

type paths struct {
	// projectRoot is the root directory of the mod project
	projectRoot string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgState is the XDG state directory
	xdgState string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given project root.
// If projectRoot is empty, it will be determined from environment
// variables or the current working directory.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = ExpandHome(projectRoot)
		p.usedFallback = false
	}

	// Ensure project root is absolute
	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	p.xdgConfig = DefaultConfigDir()
	p.xdgState = filepath.Join(xdg.StateHome, ModpackDirName)
}

// DefaultConfigDir returns the directory user-level configuration is
// read from: MODPACK_CONFIG_DIR when set, otherwise the XDG config
// home. It needs no Paths instance, so the config loader can probe it
// before a project root is known.
func DefaultConfigDir() string {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		return ExpandHome(configDir)
	}
	return filepath.Join(xdg.ConfigHome, ModpackDirName)
}

// findProjectRoot determines the project root using the following priority:
// 1. MODPACK_PROJECT_ROOT environment variable (if set)
// 2. Current working directory (fallback)
//
// The bool return reports whether the current working directory was used
// as fallback, so callers can surface a hint when packaging the wrong
// directory by accident.
func findProjectRoot() (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// ExpandHome expands a leading ~ to the user's home directory. Paths
// that do not start with ~ are returned unchanged.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ProjectRoot returns the root directory of the mod project
func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ManifestPath returns the path to the project's manifest file
func (p *paths) ManifestPath() string {
	return filepath.Join(p.projectRoot, ManifestName)
}

// InstallDir returns the game's mods directory for the current platform.
// Overrides from configuration are applied by the caller; this is only
// the platform convention.
func (p *paths) InstallDir() string {
	return installDirFor(runtime.GOOS)
}

// installDirFor returns the conventional mods directory for the given OS
func installDirFor(goos string) string {
	switch goos {
	case "linux":
		return ExpandHome("~/.factorio/mods")
	case "darwin":
		return ExpandHome("~/Library/Application Support/factorio/mods")
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "Factorio", "mods")
		}
		return ExpandHome("~/AppData/Roaming/Factorio/mods")
	default:
		logger := logging.GetLogger("paths")
		logger.Warn().Str("os", goos).Msg("Unknown OS, defaulting to Linux mods directory")
		return ExpandHome("~/.factorio/mods")
	}
}

// StagingRoot returns the base directory under which staging areas are
// created. Keeping it deterministic lets a later run remove leftovers
// from an interrupted one.
func (p *paths) StagingRoot() string {
	return filepath.Join(os.TempDir(), ModpackDirName)
}

// ConfigDir returns the XDG config directory for modpack
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for modpack
func (p *paths) StateDir() string {
	return p.xdgState
}
