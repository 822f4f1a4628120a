package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/tabbi89/ConfigServiceProvider/internal/cli/output"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/logger"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "CONFCTL_"

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".confctl", "cli.yaml")
}

// Load loads CLI configuration from file and applies CONFCTL_* environment
// overrides. A missing file yields the defaults.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()

	store := confloader.New(confloader.WithLogger(logger.Discard()))
	if err := store.Add(path); err != nil {
		return nil, fmt.Errorf("load cli config: %w", err)
	}
	if err := store.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode cli config %s: %w", path, err)
	}

	if err := LoadEnv(cfg); err != nil {
		return nil, err
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("cli config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML with owner-only permissions, creating the
// directory if needed.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode cli config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadEnv overlays CONFCTL_* environment variables onto cfg.
// CONFCTL_DEFAULT_OUTPUT -> default_output, CONFCTL_LOG__LEVEL -> log.level.
func LoadEnv(cfg *CLIConfig) error {
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("decode env: %w", err)
	}
	return nil
}

// Verify validates the configuration.
func Verify(cfg *CLIConfig) error {
	if _, err := output.ParseFormat(cfg.DefaultOutput); err != nil {
		return fmt.Errorf("default_output: %w", err)
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logger.ParseFormat(cfg.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}

	return nil
}
