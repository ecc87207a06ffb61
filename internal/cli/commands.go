// Package cli wires the modpack command-line interface. The root command
// runs the packaging pipeline; version and genconfig ride alongside, and a
// topic-based help system serves the docs/help pages.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/soulcrysis/modpack/internal/version"
	"github.com/soulcrysis/modpack/pkg/cobrax/topics"
	"github.com/soulcrysis/modpack/pkg/config"
	"github.com/soulcrysis/modpack/pkg/filesystem"
	"github.com/soulcrysis/modpack/pkg/logging"
	"github.com/soulcrysis/modpack/pkg/paths"
	"github.com/soulcrysis/modpack/pkg/pipeline"
	"github.com/soulcrysis/modpack/pkg/ui"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity   int
		projectRoot string
		local       bool
		graphics    bool
		excludeExt  string
		installDir  string
		format      string
	)

	rootCmd := &cobra.Command{
		Use:   "modpack",
		Short: "Package a Factorio mod into an installable zip",
		Long: `modpack reads the mod manifest (info.json), stages the distributable
files, strips unwanted extensions, zips everything under the
{name}_{version}/ folder the game expects, and moves the archive into
the game's mods directory (or next to the project with --local).`,
		Example: `  # Package the mod in the current directory and install it
  modpack

  # Keep the archive next to the project
  modpack --local

  # Strip Blender and GIMP sources on top of the builtin exclusions
  modpack -x "blend, xcf"

  # Package the graphics sub-mod
  modpack --graphics`,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(packageOptions{
				projectRoot: projectRoot,
				local:       local,
				graphics:    graphics,
				excludeExt:  excludeExt,
				installDir:  installDir,
				format:      format,
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", "", "Mod project root (default: $MODPACK_PROJECT_ROOT or the current directory)")

	// Packaging flags
	rootCmd.Flags().BoolVarP(&local, "local", "l", false, "Write the archive next to the project instead of the mods directory")
	rootCmd.Flags().BoolVarP(&graphics, "graphics", "g", false, "Package the graphics sub-mod instead of the main mod")
	rootCmd.Flags().StringVarP(&excludeExt, "exclude-ext", "x", "", "Comma-separated extra file extensions to strip before archiving")
	rootCmd.Flags().StringVar(&installDir, "install-dir", "", "Destination mods directory (overrides config and the platform default)")
	rootCmd.Flags().StringVar(&format, "format", "auto", "Output format: auto, term, text or json")

	// Disable automatic help command (the topics system installs its own)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenconfigCmd())

	// Topic-based help: `modpack help <topic>` serves the docs/help pages,
	// markdown rendered through glamour
	_ = topics.InitializeWithOptions(rootCmd, helpTopicsDir(), topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})

	return rootCmd
}

// packageOptions carries the root command's flag values.
type packageOptions struct {
	projectRoot string
	local       bool
	graphics    bool
	excludeExt  string
	installDir  string
	format      string
}

// runPackage resolves paths and configuration, runs the packaging
// pipeline, and renders the result.
func runPackage(opts packageOptions) error {
	outputFormat, err := ui.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	renderer, err := ui.NewRenderer(outputFormat, os.Stdout)
	if err != nil {
		return err
	}

	p, err := paths.New(opts.projectRoot)
	if err != nil {
		return err
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, "Warning: no project root given and %s not set.\n", paths.EnvProjectRoot)
		fmt.Fprintf(os.Stderr, "Packaging current directory: %s\n\n", p.ProjectRoot())
	}

	var overrides map[string]interface{}
	if opts.installDir != "" {
		overrides = map[string]interface{}{"deploy.dir": opts.installDir}
	}

	cfg, err := config.LoadWithOverrides(p.ProjectRoot(), overrides)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(pipeline.Options{
		FileSystem:        filesystem.NewOS(),
		Paths:             p,
		Config:            cfg,
		Local:             opts.local,
		Graphics:          opts.graphics,
		ExcludeExtensions: opts.excludeExt,
	})
	if err != nil {
		// Machine-readable consumers get the error on stdout as well;
		// main prints the human-readable line on stderr.
		if outputFormat == ui.FormatJSON {
			_ = renderer.RenderError(err)
		}
		return err
	}

	return renderer.RenderResult(result)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("modpack version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newGenconfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Print the default configuration file",
		Long: `Genconfig outputs the default modpack.toml with every value commented
out, ready to drop into a mod project and edit.`,
		Example: `  # Print to stdout
  modpack genconfig

  # Write modpack.toml into the project root
  modpack genconfig --write --root ~/mods/my-mod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			content := config.GenerateConfigContent()

			if !write {
				fmt.Print(content)
				return nil
			}

			root, _ := cmd.Root().PersistentFlags().GetString("root")
			p, err := paths.New(root)
			if err != nil {
				return err
			}

			target := filepath.Join(p.ProjectRoot(), "modpack.toml")
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}

			fmt.Printf("Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, "Write modpack.toml to the project root instead of stdout")

	return cmd
}

// helpTopicsDir locates the docs/help directory, preferring paths relative
// to the executable so installed binaries find their topics.
func helpTopicsDir() string {
	if exe, err := os.Executable(); err == nil {
		candidates := []string{
			filepath.Join(filepath.Dir(exe), "..", "..", "docs", "help"), // development
			filepath.Join(filepath.Dir(exe), "docs", "help"),             // installed
		}
		for _, dir := range candidates {
			if _, err := os.Stat(dir); err == nil {
				return dir
			}
		}
	}
	return "docs/help"
}
