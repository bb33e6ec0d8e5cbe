package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tablesync-go/internal/cli/output"
	"github.com/yndnr/tablesync-go/internal/infra/buildinfo"
)

// HealthCommand returns the health command.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check server health",
		Flags:  []cli.Flag{timeoutFlag()},
		Action: healthAction,
	}
}

func healthAction(c *cli.Context) error {
	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}

	h, err := rt.Client.Health(c.Context)
	if err != nil {
		return fmt.Errorf("server unhealthy: %w", err)
	}

	if rt.Format != output.FormatTable {
		return rt.Print(h)
	}
	fmt.Fprintf(rt.Out, "Server is %s at revision %d\n", h.Status, h.Revision)
	fmt.Fprintf(rt.Out, "  Target: %s\n", rt.Client.BaseURL())
	return nil
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Print build information",
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}
	out, _ := writers(c)
	return output.NewFormatter(format, nil).Format(out, buildinfo.Get())
}
