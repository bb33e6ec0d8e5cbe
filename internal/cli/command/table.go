package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tablesync-go/internal/core/domain"
)

func timeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Per-request timeout (default: 10s)",
	}
}

// ShowCommand returns the show command.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Aliases: []string{"get"},
		Usage:   "Print the full table",
		Flags:   []cli.Flag{timeoutFlag()},
		Action:  showAction,
	}
}

func showAction(c *cli.Context) error {
	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}

	state, err := rt.Client.State(c.Context)
	if err != nil {
		return fmt.Errorf("fetch table: %w", err)
	}
	return rt.Print(state)
}

// ChangesCommand returns the changes command.
func ChangesCommand() *cli.Command {
	return &cli.Command{
		Name:  "changes",
		Usage: "Print rows changed after a revision",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "since",
				Usage:    "Revision to compare against",
				Required: true,
			},
			timeoutFlag(),
		},
		Action: changesAction,
	}
}

func changesAction(c *cli.Context) error {
	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}

	state, err := rt.Client.Changes(c.Context, c.Int64("since"))
	if err != nil {
		return fmt.Errorf("fetch changes: %w", err)
	}
	return rt.Print(state)
}

// AddCommand returns the add command.
func AddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a row",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Row id",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Row name",
			},
			&cli.Float64Flag{
				Name:  "price",
				Usage: "Row price",
			},
			timeoutFlag(),
		},
		Action: addAction,
	}
}

func addAction(c *cli.Context) error {
	id := c.String("id")
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("--id must not be empty")
	}

	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}

	row := domain.Row{ID: id, Name: c.String("name"), Price: c.Float64("price")}
	state, err := rt.Client.Add(c.Context, row)
	if err != nil {
		return fmt.Errorf("add row %q: %w", id, err)
	}
	return rt.Print(state)
}

// RemoveCommand returns the remove command.
func RemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove the first row with the given id",
		ArgsUsage: "ID",
		Flags:     []cli.Flag{timeoutFlag()},
		Action:    removeAction,
	}
}

func removeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("remove requires exactly one ID argument")
	}
	id := c.Args().First()

	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}

	state, err := rt.Client.Remove(c.Context, id)
	if err != nil {
		return fmt.Errorf("remove row %q: %w", id, err)
	}
	return rt.Print(state)
}
