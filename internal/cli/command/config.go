package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tablesync-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the default config file path",
				Action: configPath,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}
	return rt.Print(rt.Config)
}

func configPath(c *cli.Context) error {
	out, _ := writers(c)
	_, err := fmt.Fprintln(out, config.DefaultConfigPath())
	return err
}
