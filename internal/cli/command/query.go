package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tabbi89/ConfigServiceProvider/internal/cli/output"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/logger"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value at a dotted key",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "default",
				Usage: "Value to print when KEY does not resolve",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("get: expected one KEY argument, got %d", c.NArg())
			}
			env, err := envFrom(c)
			if err != nil {
				return err
			}

			var def *string
			if c.IsSet("default") {
				d := c.String("default")
				def = &d
			}
			return runGet(env, c.App.Writer, c.Args().First(), def)
		},
	}
}

// DumpCommand returns the dump command.
func DumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Print the merged configuration, or the subtree under PREFIX",
		ArgsUsage: "[PREFIX]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("dump: expected at most one PREFIX argument, got %d", c.NArg())
			}
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return runDump(env, c.App.Writer, c.Args().First())
		},
	}
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "List leaf keys in dotted form, optionally under PREFIX",
		ArgsUsage: "[PREFIX]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("keys: expected at most one PREFIX argument, got %d", c.NArg())
			}
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return runKeys(env, c.App.Writer, c.Args().First())
		},
	}
}

// runGet prints the value at key, or def when key does not resolve.
func runGet(env *Env, w io.Writer, key string, def *string) error {
	store, err := env.Store()
	if err != nil {
		return err
	}

	v, ok := store.Lookup(key)
	if !ok {
		if def == nil {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return env.print(w, *def)
	}
	return env.print(w, env.redact(key, v))
}

// runDump prints the whole tree, or the subtree at prefix nested under its
// full path so table rows keep absolute keys.
func runDump(env *Env, w io.Writer, prefix string) error {
	store, err := env.Store()
	if err != nil {
		return err
	}

	var tree map[string]any
	if prefix == "" {
		tree = store.All()
	} else {
		v, ok := store.Lookup(prefix)
		if !ok {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, prefix)
		}
		tree = nest(prefix, v)
	}

	if !env.Reveal {
		tree = logger.RedactTree(tree)
	}
	return env.print(w, tree)
}

// runKeys lists leaf keys. Table output is one bare key per line.
func runKeys(env *Env, w io.Writer, prefix string) error {
	store, err := env.Store()
	if err != nil {
		return err
	}

	keys := store.KeysWithPrefix(prefix)
	if env.Format != output.FormatTable {
		return env.print(w, keys)
	}
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

// nest wraps v in one mapping per segment of key.
func nest(key string, v any) map[string]any {
	segs := strings.Split(key, confloader.Delimiter)
	out := map[string]any{segs[len(segs)-1]: v}
	for i := len(segs) - 2; i >= 0; i-- {
		out = map[string]any{segs[i]: out}
	}
	return out
}
