package config

// CLIConfig is the configuration for confctl.
type CLIConfig struct {
	// DefaultOutput is used when --output is not given: table, json, yaml.
	DefaultOutput string `koanf:"default_output" yaml:"default_output" json:"default_output"`

	// ConfigDir is autoloaded when --dir is not given.
	ConfigDir string `koanf:"config_dir" yaml:"config_dir" json:"config_dir"`

	// Files are added after the directory, in order.
	Files []string `koanf:"files" yaml:"files" json:"files"`

	Log LogConfig `koanf:"log" yaml:"log" json:"log"`
}

// LogConfig configures diagnostics written to stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `koanf:"format" yaml:"format" json:"format"` // text, json
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultOutput: "table",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
