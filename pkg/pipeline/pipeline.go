// Package pipeline orchestrates a full packaging run. It encapsulates
// the flow: read manifest → select files → stage → filter → archive →
// deploy, with staging cleanup on every path out.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/soulcrysis/modpack/pkg/archive"
	"github.com/soulcrysis/modpack/pkg/config"
	"github.com/soulcrysis/modpack/pkg/deploy"
	"github.com/soulcrysis/modpack/pkg/errors"
	"github.com/soulcrysis/modpack/pkg/exclusion"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/manifest"
	"github.com/soulcrysis/modpack/pkg/paths"
	"github.com/soulcrysis/modpack/pkg/selector"
	"github.com/soulcrysis/modpack/pkg/staging"
	"github.com/soulcrysis/modpack/pkg/types"
)

// Options carries everything a packaging run needs. Nothing is read
// from ambient state; the command layer resolves all inputs first.
type Options struct {
	FileSystem types.FS
	Paths      paths.Paths
	Config     *config.Config

	// Local deploys into the project directory instead of the game's
	// mods directory.
	Local bool

	// Graphics packages the graphics sub-mod instead of the main mod.
	Graphics bool

	// ExcludeExtensions holds extra extension tokens from the command
	// line, comma separated.
	ExcludeExtensions string
}

// Run executes a complete packaging run and reports how it ended. The
// returned result is valid on failure too; its phase is then
// PhaseFailed and the staging area has already been cleaned up.
func Run(opts Options) (*types.PackageResult, error) {
	logger := logging.GetLogger("pipeline")
	done := logging.LogOperationStart(logger, "package")
	defer done()

	result := &types.PackageResult{
		Phase:       types.PhaseInit,
		LocalDeploy: opts.Local,
	}

	if err := run(opts, result, logger); err != nil {
		logger.Error().Err(err).Str("phase", result.Phase.String()).Msg("Packaging failed")
		result.Phase = types.PhaseFailed
		return result, err
	}

	return result, nil
}

func run(opts Options, result *types.PackageResult, logger zerolog.Logger) error {
	fsys := opts.FileSystem
	cfg := opts.Config
	root := opts.Paths.ProjectRoot()

	// Step 1: Read the manifest that names the package
	mod, err := manifest.Read(fsys, manifestPath(opts))
	if err != nil {
		return err
	}
	result.Mod = mod
	if err := advance(result, types.PhaseMetadataRead, logger); err != nil {
		return err
	}

	// A stale archive at the destination must not outlive this run
	destDir := destinationDir(opts)
	if err := deploy.CleanDestination(fsys, destDir, mod.ArchiveName()); err != nil {
		return err
	}

	// Step 2: Match the distribution list against the project
	var sel types.Selection
	if opts.Graphics {
		sel, err = selector.SelectGraphics(fsys, root, cfg.Graphics.Sources, cfg.Graphics.Manifest)
		if err != nil {
			return err
		}
	} else {
		sel = selector.Select(fsys, root, cfg.Pack.Include)
	}
	for _, name := range sel.Missing {
		logger.Warn().Str("item", name).Msg("Distribution list entry not found")
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found, skipping", name))
	}
	if err := advance(result, types.PhaseSelected, logger); err != nil {
		return err
	}

	// Step 3: Copy the selection into a scoped staging area
	area := staging.NewArea(fsys, stagingRoot(opts), mod.BaseName())
	if err := area.Prepare(); err != nil {
		return err
	}
	defer func() {
		area.Cleanup()
		if result.Phase == types.PhaseDeployed {
			result.Phase = types.PhaseCleanedUp
		}
	}()

	if err := area.Stage(sel); err != nil {
		return err
	}
	if err := advance(result, types.PhaseStaged, logger); err != nil {
		return err
	}

	// Step 4: Drop working files that must not ship
	set := exclusion.NewSet(cfg.Pack.Exclude, opts.ExcludeExtensions)
	removed, err := exclusion.Apply(fsys, area.Path(), set)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		logger.Debug().Strs("removed", removed).Msg("Excluded files removed from staging")
	}
	if err := advance(result, types.PhaseFiltered, logger); err != nil {
		return err
	}

	// Step 5: Build the release archive next to the staging area
	if err := archive.Create(fsys, area.Path(), area.ArchivePath()); err != nil {
		return err
	}
	result.ArchivePath = area.ArchivePath()
	if err := advance(result, types.PhaseArchived, logger); err != nil {
		return err
	}

	// Step 6: Move the archive to its destination
	deployed, err := deploy.Deploy(fsys, area.ArchivePath(), destDir)
	if err != nil {
		return err
	}
	result.ArchivePath = deployed.Path
	result.ArchiveSize = deployed.Size
	if err := advance(result, types.PhaseDeployed, logger); err != nil {
		return err
	}

	logger.Info().
		Str("mod", mod.BaseName()).
		Str("path", deployed.Path).
		Str("size", deployed.HumanSize()).
		Msg("Packaging completed")

	return nil
}

// advance moves the run to the next phase, guarding against ordering
// bugs in the pipeline itself.
func advance(result *types.PackageResult, next types.Phase, logger zerolog.Logger) error {
	if !result.Phase.CanTransition(next) {
		return errors.Newf(errors.ErrInternal,
			"illegal phase transition %s -> %s", result.Phase, next)
	}
	logger.Debug().
		Str("from", result.Phase.String()).
		Str("to", next.String()).
		Msg("Phase transition")
	result.Phase = next
	return nil
}

// manifestPath returns where the run reads its metadata from. Graphics
// runs use the manifest inside the graphics directory.
func manifestPath(opts Options) string {
	if opts.Graphics {
		return filepath.Join(opts.Paths.ProjectRoot(), filepath.FromSlash(opts.Config.Graphics.Manifest))
	}
	return opts.Paths.ManifestPath()
}

// destinationDir resolves where the finished archive is moved to.
func destinationDir(opts Options) string {
	if opts.Local {
		return opts.Paths.ProjectRoot()
	}
	if dir := opts.Config.Deploy.Dir; dir != "" {
		return paths.ExpandHome(dir)
	}
	return opts.Paths.InstallDir()
}

// stagingRoot resolves the directory staging areas are created under.
func stagingRoot(opts Options) string {
	if root := opts.Config.Staging.Root; root != "" {
		return paths.ExpandHome(root)
	}
	return opts.Paths.StagingRoot()
}
