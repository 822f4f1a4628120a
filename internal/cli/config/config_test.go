package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultOutput != "table" {
		t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, "table")
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want warn/text", cfg.Log)
	}
	if cfg.ConfigDir != "" || len(cfg.Files) != 0 {
		t.Errorf("Default() should not load anything: %+v", cfg)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if !filepath.IsAbs(path) {
		t.Error("Path should be absolute")
	}

	expected := filepath.Join(".confctl", "cli.yaml")
	if !strings.HasSuffix(path, expected) {
		t.Errorf("Path = %q, should end with %q", path, expected)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "cli.yaml"))
	if err != nil {
		t.Fatalf("Load should not error for nonexistent file: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load should return config")
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"cli.yaml", "default_output: json\nconfig_dir: /etc/app\nfiles: [a.yml, b.json]\nlog:\n  level: debug\n"},
		{"cli.json", `{"default_output": "json", "config_dir": "/etc/app", "files": ["a.yml", "b.json"], "log": {"level": "debug"}}`},
		{"cli.toml", "default_output = \"json\"\nconfig_dir = \"/etc/app\"\nfiles = [\"a.yml\", \"b.json\"]\n[log]\nlevel = \"debug\"\n"},
		{"cli.lua", `return { default_output = "json", config_dir = "/etc/app", files = { "a.yml", "b.json" }, log = { level = "debug" } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			want := &CLIConfig{
				DefaultOutput: "json",
				ConfigDir:     "/etc/app",
				Files:         []string{"a.yml", "b.json"},
				Log:           LogConfig{Level: "debug", Format: "text"},
			}
			if !reflect.DeepEqual(cfg, want) {
				t.Errorf("Load() = %+v, want %+v", cfg, want)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("default_output: [json\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "Invalid YAML provided") {
		t.Errorf("Load() error = %v, want YAML parse error", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("default_output: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want invalid default_output")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("default_output: json\nlog:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFCTL_DEFAULT_OUTPUT", "yaml")
	t.Setenv("CONFCTL_LOG__LEVEL", "error")
	t.Setenv("CONFCTL_CONFIG_DIR", "/srv/config")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultOutput != "yaml" {
		t.Errorf("DefaultOutput = %q, want yaml", cfg.DefaultOutput)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.ConfigDir != "/srv/config" {
		t.Errorf("ConfigDir = %q, want /srv/config", cfg.ConfigDir)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "cli.yaml")

	cfg := Default()
	cfg.DefaultOutput = "json"
	cfg.Files = []string{"extra.toml"}
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr bool
	}{
		{"defaults", func(*CLIConfig) {}, false},
		{"json output", func(c *CLIConfig) { c.DefaultOutput = "JSON" }, false},
		{"bad output", func(c *CLIConfig) { c.DefaultOutput = "xml" }, true},
		{"bad level", func(c *CLIConfig) { c.Log.Level = "trace" }, true},
		{"console format", func(c *CLIConfig) { c.Log.Format = "console" }, false},
		{"bad format", func(c *CLIConfig) { c.Log.Format = "logfmt" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Verify(cfg); (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
