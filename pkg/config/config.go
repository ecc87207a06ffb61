package config

// Pack holds the file selection configuration for a packaging run
type Pack struct {
	// Include lists the top-level files and directories eligible for
	// packaging, in the order they are staged
	Include []string `koanf:"include" toml:"include"`

	// Exclude lists file extensions (without leading dot) stripped from
	// the staging area before archiving
	Exclude []string `koanf:"exclude" toml:"exclude"`
}

// Graphics holds the graphics-only packaging configuration
type Graphics struct {
	// Sources are the directories whose contents are flattened into the
	// archive root in graphics mode, in precedence order
	Sources []string `koanf:"sources" toml:"sources"`

	// Manifest is the info.json path used in graphics mode, relative to
	// the project root
	Manifest string `koanf:"manifest" toml:"manifest"`
}

// Deploy holds the archive destination configuration
type Deploy struct {
	// Dir overrides the platform's default mods directory when non-empty
	Dir string `koanf:"dir" toml:"dir"`
}

// Staging holds the staging area configuration
type Staging struct {
	// Root overrides the base directory for staging areas when non-empty
	Root string `koanf:"root" toml:"root"`
}

// Config is the main configuration structure
type Config struct {
	Pack     Pack     `koanf:"pack"`
	Graphics Graphics `koanf:"graphics"`
	Deploy   Deploy   `koanf:"deploy"`
	Staging  Staging  `koanf:"staging"`
}

// Default returns the built-in configuration without any project,
// environment, or command-line overrides applied.
func Default() *Config {
	cfg, err := loadDefaults()
	if err != nil {
		// The embedded defaults are compiled in; failing to parse them
		// is a programming error, not a runtime condition.
		panic("config: invalid embedded defaults: " + err.Error())
	}
	return cfg
}
