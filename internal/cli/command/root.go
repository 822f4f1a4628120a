package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tabbi89/ConfigServiceProvider/internal/cli/config"
	"github.com/tabbi89/ConfigServiceProvider/internal/cli/output"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/buildinfo"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/container"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/logger"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/metric"
)

const envKey = "confctl.env"

var (
	// ErrKeyNotFound is returned when a dotted key does not resolve.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNoEnv is returned when a command runs without the root Before hook.
	ErrNoEnv = errors.New("command environment not initialised")
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "confctl",
		Usage:   "Load, merge and inspect layered configuration files",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			DumpCommand(),
			KeysCommand(),
			SourcesCommand(),
			CheckCommand(),
			ExtensionsCommand(),
			SettingsCommand(),
			ShellCommand(),
			VersionCommand(),
		},
		Before: setup,
		After:  teardown,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "settings",
			Usage:   "CLI settings file (default ~/.confctl/cli.yaml)",
			EnvVars: []string{"CONFCTL_SETTINGS"},
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Directory to autoload configuration files from",
			EnvVars: []string{"CONFCTL_CONFIG_DIR"},
		},
		&cli.StringSliceFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Configuration file to merge after the directory (repeatable)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (untruncated values, more columns)",
		},
		&cli.BoolFlag{
			Name:  "reveal",
			Usage: "Print values of sensitive keys instead of masking them",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Diagnostics level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Diagnostics format: text, json",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "Write load metrics to stderr after the command",
		},
	}
}

// Env is the state shared by every command of one run.
type Env struct {
	Settings     *config.CLIConfig
	SettingsPath string
	Log          logger.Logger
	Metrics      *metric.Registry
	Format       output.Format
	Wide         bool
	Reveal       bool

	dir   string
	files []string
	store *confloader.Store
}

// setup is the root Before hook: it resolves settings, configures logging
// and records the Env in the app metadata.
func setup(c *cli.Context) error {
	settingsPath := c.String("settings")
	if settingsPath == "" {
		settingsPath = config.DefaultConfigPath()
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	if c.IsSet("log-level") {
		settings.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		settings.Log.Format = c.String("log-format")
	}
	if c.IsSet("output") {
		settings.DefaultOutput = c.String("output")
	}
	if err := config.Verify(settings); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	format, err := output.ParseFormat(settings.DefaultOutput)
	if err != nil {
		return err
	}

	dir := c.String("dir")
	if dir == "" {
		dir = settings.ConfigDir
	}

	env := &Env{
		Settings:     settings,
		SettingsPath: settingsPath,
		Log:          log,
		Metrics:      metric.NewRegistry(),
		Format:       format,
		Wide:         c.Bool("wide"),
		Reveal:       c.Bool("reveal"),
		dir:          dir,
		files:        append(append([]string(nil), settings.Files...), c.StringSlice("file")...),
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = env
	c.Context = logger.WithLogger(c.Context, log)
	return nil
}

// teardown is the root After hook.
func teardown(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil || !c.Bool("metrics") {
		return nil
	}
	return env.Metrics.WriteText(c.App.ErrWriter)
}

// envFrom retrieves the Env recorded by setup.
func envFrom(c *cli.Context) (*Env, error) {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env, nil
	}
	return nil, ErrNoEnv
}

// commandLogger returns the context logger tagged with the running command.
func commandLogger(c *cli.Context) logger.Logger {
	name := ""
	if c.Command != nil {
		name = c.Command.Name
	}
	return logger.L(logger.WithCommand(c.Context, name))
}

// Store loads the configuration on first use: the autoload directory through
// the service container, then every explicit file in order.
func (e *Env) Store() (*confloader.Store, error) {
	if e.store != nil {
		return e.store, nil
	}

	c := container.New()
	provider := confloader.NewServiceProvider(e.dir,
		confloader.WithLogger(e.Log),
		confloader.WithRecorder(e.Metrics),
	)
	if err := c.Register(provider); err != nil {
		return nil, err
	}
	store, err := confloader.FromContainer(c)
	if err != nil {
		return nil, err
	}

	for _, path := range e.files {
		// Explicit files must exist; the loader itself treats missing as empty.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := store.Add(path); err != nil {
			return nil, err
		}
	}

	if err := e.Metrics.Watch(store); err != nil {
		return nil, err
	}

	e.Log.Debug("configuration loaded",
		"dir", e.dir,
		"files", len(e.files),
		"keys", store.Stats().Keys,
	)
	e.store = store
	return store, nil
}

// Formatter returns the formatter selected by --output and --wide.
func (e *Env) Formatter() output.Formatter {
	return output.NewFormatter(e.Format, e.Wide)
}

// print formats v to w.
func (e *Env) print(w io.Writer, v any) error {
	return e.Formatter().Format(w, v)
}

// redact masks sensitive values under key unless --reveal was given.
func (e *Env) redact(key string, v any) any {
	if e.Reveal {
		return v
	}
	return logger.RedactValue(key, v)
}
