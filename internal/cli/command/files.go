package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/logger"
)

// ErrCheckFailed is returned by check when a file is missing or malformed.
var ErrCheckFailed = errors.New("check failed")

// Check statuses.
const (
	StatusOK          = "ok"
	StatusEmpty       = "empty"
	StatusUnsupported = "unsupported"
	StatusMissing     = "missing"
	StatusInvalid     = "invalid"
)

// SourcesCommand returns the sources command.
func SourcesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: "List loaded files in merge order",
		Action: func(c *cli.Context) error {
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return runSources(env, c.App.Writer)
		},
	}
}

// CheckCommand returns the check command.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse files without merging them and report problems",
		ArgsUsage: "FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("check: expected at least one FILE argument")
			}
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return runCheck(env, commandLogger(c), c.App.Writer, c.Args().Slice())
		},
	}
}

// ExtensionsCommand returns the extensions command.
func ExtensionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "extensions",
		Usage: "List the file drivers in resolution order",
		Action: func(c *cli.Context) error {
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return runExtensions(env, c.App.Writer)
		},
	}
}

func runSources(env *Env, w io.Writer) error {
	store, err := env.Store()
	if err != nil {
		return err
	}
	return env.print(w, store.Sources())
}

// checkResult is one row of check output.
type checkResult struct {
	File   string `json:"file" yaml:"file"`
	Status string `json:"status" yaml:"status"`
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`
	Keys   int    `json:"keys" yaml:"keys"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// runCheck parses every file in its own store. Missing and malformed files
// fail the check; unsupported and empty files are reported only.
func runCheck(env *Env, log logger.Logger, w io.Writer, files []string) error {
	chain := confloader.NewChain(confloader.DefaultDrivers()...)
	results := make([]checkResult, 0, len(files))
	failed := 0

	for _, path := range files {
		res := checkFile(env, chain, path)
		if res.Status == StatusMissing || res.Status == StatusInvalid {
			failed++
		}
		log.Debug("file checked", "path", path, "status", res.Status)
		results = append(results, res)
	}

	if err := env.print(w, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failed, len(files))
	}
	return nil
}

func checkFile(env *Env, chain *confloader.Chain, path string) checkResult {
	res := checkResult{File: path}

	if _, err := os.Stat(path); err != nil {
		res.Status = StatusMissing
		res.Error = err.Error()
		return res
	}
	if !chain.Supports(path) {
		res.Status = StatusUnsupported
		return res
	}

	store := confloader.New(
		confloader.WithChain(chain),
		confloader.WithLogger(env.Log),
		confloader.WithRecorder(env.Metrics),
	)
	if err := store.Add(path); err != nil {
		res.Status = StatusInvalid
		res.Error = err.Error()
		return res
	}

	res.Keys = store.Stats().Keys
	if res.Keys == 0 {
		res.Status = StatusEmpty
		return res
	}
	res.Status = StatusOK
	res.Driver = store.Sources()[0].Driver
	return res
}

// driverInfo is one row of extensions output.
type driverInfo struct {
	Driver     string   `json:"driver" yaml:"driver"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

func runExtensions(env *Env, w io.Writer) error {
	drivers := confloader.DefaultDrivers()
	rows := make([]driverInfo, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, driverInfo{Driver: d.Name(), Extensions: d.Extensions()})
	}
	return env.print(w, rows)
}
