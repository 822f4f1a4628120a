package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/tabbi89/ConfigServiceProvider/internal/cli/repl"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/buildinfo"
)

// shellCommands are the commands available inside the shell.
var shellCommands = []string{"get", "dump", "keys", "sources", "check", "extensions", "version"}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return env.print(c.App.Writer, buildinfo.Get())
		},
	}
}

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Query the loaded configuration interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "History file (default ~/.confctl/history, empty string disables)",
				Value: repl.DefaultHistoryPath(),
			},
		},
		Action: runShell,
	}
}

func runShell(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	store, err := env.Store()
	if err != nil {
		return err
	}

	log := commandLogger(c)
	log.Debug("shell started", "keys", store.Stats().Keys)

	r := repl.New(shellExecutor(env, c.App.Writer), shellCommands, store.Keys)
	r.SetIO(c.App.Reader, c.App.Writer)
	r.SetHistory(repl.NewHistory(c.String("history-file")))

	err = r.Run()
	log.Debug("shell exited", "error", err)
	return err
}

// shellExecutor dispatches shell lines to the command handlers.
func shellExecutor(env *Env, w io.Writer) repl.Executor {
	return func(args []string) error {
		name, rest := args[0], args[1:]

		switch name {
		case "get":
			if len(rest) < 1 || len(rest) > 2 {
				return fmt.Errorf("usage: get KEY [DEFAULT]")
			}
			var def *string
			if len(rest) == 2 {
				def = &rest[1]
			}
			return runGet(env, w, rest[0], def)
		case "dump", "keys":
			if len(rest) > 1 {
				return fmt.Errorf("usage: %s [PREFIX]", name)
			}
			prefix := ""
			if len(rest) == 1 {
				prefix = rest[0]
			}
			if name == "dump" {
				return runDump(env, w, prefix)
			}
			return runKeys(env, w, prefix)
		case "sources":
			return runSources(env, w)
		case "check":
			if len(rest) == 0 {
				return fmt.Errorf("usage: check FILE...")
			}
			return runCheck(env, env.Log, w, rest)
		case "extensions":
			return runExtensions(env, w)
		case "version":
			return env.print(w, buildinfo.Get())
		default:
			return fmt.Errorf("unknown command %q (try help)", name)
		}
	}
}
