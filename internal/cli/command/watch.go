package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tablesync-go/internal/cli/output"
	"github.com/yndnr/tablesync-go/internal/cli/syncer"
)

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Print the table, then stream changes until interrupted",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "poll-interval",
				Usage: "Wait after an empty delta (default: 1s)",
			},
			&cli.DurationFlag{
				Name:  "retry-interval",
				Usage: "Wait after the connection is lost (default: 5s)",
			},
			timeoutFlag(),
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}

	renderer := output.NewRowRenderer(rt.Out, rt.ErrOut, rt.Format, rt.Styles)
	s := syncer.New(rt.Client, renderer, syncer.Config{
		PollInterval:  rt.Config.PollInterval,
		RetryInterval: rt.Config.RetryInterval,
	}, syncer.WithLogger(rt.Logger.With("server", rt.Client.BaseURL())))

	rt.Logger.Debug("watch started",
		"server", rt.Client.BaseURL(),
		"poll_interval", rt.Config.PollInterval,
		"retry_interval", rt.Config.RetryInterval,
	)
	if err := s.Run(c.Context); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	rt.Logger.Debug("watch stopped", "watermark", s.Watermark())
	return nil
}
