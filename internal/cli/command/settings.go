package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tabbi89/ConfigServiceProvider/internal/cli/config"
)

// SettingsCommand returns the settings subcommand group.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "CLI settings management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show effective CLI settings",
				Action: settingsShow,
			},
			{
				Name:   "path",
				Usage:  "Print the CLI settings file path",
				Action: settingsPath,
			},
			{
				Name:  "init",
				Usage: "Write a settings file with the defaults",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: settingsInit,
			},
		},
	}
}

func settingsShow(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	return env.print(c.App.Writer, env.Settings)
}

func settingsPath(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, env.SettingsPath)
	return err
}

func settingsInit(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	_, err = os.Stat(env.SettingsPath)
	switch {
	case err == nil && !c.Bool("force"):
		return fmt.Errorf("%s already exists (use --force to overwrite)", env.SettingsPath)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := config.Save(config.Default(), env.SettingsPath); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	_, err = fmt.Fprintf(c.App.Writer, "Wrote %s\n", env.SettingsPath)
	return err
}
