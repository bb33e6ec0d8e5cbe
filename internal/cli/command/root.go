package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tablesync-go/internal/cli/config"
	"github.com/yndnr/tablesync-go/internal/cli/connection"
	"github.com/yndnr/tablesync-go/internal/cli/output"
	"github.com/yndnr/tablesync-go/internal/infra/buildinfo"
	"github.com/yndnr/tablesync-go/internal/infra/tlsroots"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "tablesync-cli",
		Usage:   "Watch and edit a tablesync table",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			WatchCommand(),
			ShowCommand(),
			ChangesCommand(),
			AddCommand(),
			RemoveCommand(),
			HealthCommand(),
			VersionCommand(),
			ConfigCommand(),
		},
		EnableBashCompletion: true,
	}
}

// globalFlags returns the global CLI flags.
//
// Flags carry no defaults of their own; unset flags fall through to the
// config file, TABLESYNC_CLI_* variables and config.Default.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "tablesync server address (default: localhost:8080)",
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "PEM file with extra CA certificates for https servers",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable coloured output",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging on stderr",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to CLI config file",
		},
	}
}

// flagKeys maps flag names to config keys. Only flags the user set are
// applied.
var flagKeys = map[string]string{
	"server":         "server",
	"ca-file":        "ca_file",
	"output":         "output",
	"poll-interval":  "poll_interval",
	"retry-interval": "retry_interval",
	"timeout":        "request_timeout",
}

// Runtime bundles what a command needs for one invocation.
type Runtime struct {
	Config *config.CLIConfig
	Client *connection.HTTPClient
	Logger logger.Logger
	Format output.Format
	Styles *output.Styles
	Out    io.Writer
	ErrOut io.Writer
}

// NewRuntime loads configuration and builds the client, logger and
// formatter settings for c.
func NewRuntime(c *cli.Context) (*Runtime, error) {
	overrides := make(map[string]any)
	for flagName, key := range flagKeys {
		if !c.IsSet(flagName) {
			continue
		}
		if v := c.Value(flagName); v != nil {
			overrides[key] = v
		}
	}
	if c.Bool("no-color") {
		overrides["color"] = false
	}

	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	out, errOut := writers(c)

	level := "error"
	if c.Bool("verbose") {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "text", Output: errOut})
	if err != nil {
		return nil, err
	}

	var styles *output.Styles
	if cfg.Color {
		styles = output.NewStyles(out)
	}

	clientOpts := []connection.ClientOption{connection.WithTimeout(cfg.RequestTimeout)}
	if cfg.CAFile != "" {
		tlsCfg, err := tlsroots.ClientTLSConfig(cfg.CAFile)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, connection.WithTLSConfig(tlsCfg))
	}

	return &Runtime{
		Config: cfg,
		Client: connection.NewHTTPClient(cfg.Server, clientOpts...),
		Logger: log,
		Format: format,
		Styles: styles,
		Out:    out,
		ErrOut: errOut,
	}, nil
}

// Print formats data in the selected output format.
func (r *Runtime) Print(data any) error {
	return output.NewFormatter(r.Format, r.Styles).Format(r.Out, data)
}

func writers(c *cli.Context) (io.Writer, io.Writer) {
	out, errOut := c.App.Writer, c.App.ErrWriter
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = out
	}
	return out, errOut
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}
