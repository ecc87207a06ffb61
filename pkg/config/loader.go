package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/soulcrysis/modpack/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/modpack.toml
var appConfig []byte

// GetAppConfigContent returns the content of the app configuration file
func GetAppConfigContent() string {
	return string(appConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// projectConfigNames are the file names probed for a project-level
// configuration, in order. The first one found wins.
var projectConfigNames = []string{".modpack.toml", "modpack.toml"}

// Load builds the configuration for a packaging run from the layered
// sources, lowest priority first:
//
//  1. embedded defaults
//  2. embedded app config
//  3. user config file (modpack.toml in the XDG config dir)
//  4. project config file (.modpack.toml or modpack.toml in projectRoot)
//  5. MODPACK_* environment variables
//
// An empty projectRoot skips the project config layer.
func Load(projectRoot string) (*Config, error) {
	return LoadWithOverrides(projectRoot, nil)
}

// LoadWithOverrides is Load with a final layer of explicit overrides,
// keyed by dotted config path (e.g. "deploy.dir"). Command-line flags
// land here.
func LoadWithOverrides(projectRoot string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load app config (embedded modpack.toml)
	if err := k.Load(&rawBytesProvider{bytes: appConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	// 3. Load user config if it exists
	userConfig := filepath.Join(paths.DefaultConfigDir(), "modpack.toml")
	if _, err := os.Stat(userConfig); err == nil {
		if err := validateConfigFile(userConfig); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(userConfig), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load user config from %s: %w", userConfig, err)
		}
	}

	// 4. Load project config if it exists
	if projectRoot != "" {
		for _, filename := range projectConfigNames {
			path := filepath.Join(projectRoot, filename)
			if _, err := os.Stat(path); err == nil {
				if err := validateConfigFile(path); err != nil {
					return nil, err
				}
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("failed to load project config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// 5. Load env vars (MODPACK_STAGING_ROOT -> staging.root)
	err := k.Load(env.Provider("MODPACK_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "MODPACK_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 6. Apply explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	return unmarshalConfig(k)
}

// fileConfig mirrors the keys a user or project config file may set.
// Strict decoding rejects unknown keys, which koanf would silently
// drop, so a typo like "exlude" fails loudly instead of being ignored.
type fileConfig struct {
	Pack     Pack     `toml:"pack"`
	Graphics Graphics `toml:"graphics"`
	Deploy   Deploy   `toml:"deploy"`
	Staging  Staging  `toml:"staging"`
}

func validateConfigFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dec := gotoml.NewDecoder(f)
	dec.DisallowUnknownFields()

	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		var strict *gotoml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys in config file %s:\n%s", path, strict.String())
		}
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

// loadDefaults parses only the embedded defaults layer.
func loadDefaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return unmarshalConfig(k)
}

func unmarshalConfig(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				// Lets MODPACK_PACK_EXCLUDE="png,txt" populate a list.
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
