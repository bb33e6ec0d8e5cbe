package config

import "time"

// CLIConfig is the configuration for tablesync-cli.
type CLIConfig struct {
	// Server is the server address, with or without scheme.
	Server string `koanf:"server" json:"server" yaml:"server"`
	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"ca_file" json:"ca_file" yaml:"ca_file"`
	// Output is the default output format: table, json or yaml.
	Output string `koanf:"output" json:"output" yaml:"output"`
	// Color enables coloured table output.
	Color bool `koanf:"color" json:"color" yaml:"color"`

	// PollInterval is the watch wait after an empty delta.
	PollInterval time.Duration `koanf:"poll_interval" json:"poll_interval" yaml:"poll_interval"`
	// RetryInterval is the watch wait after the connection is lost.
	RetryInterval time.Duration `koanf:"retry_interval" json:"retry_interval" yaml:"retry_interval"`
	// RequestTimeout bounds a single HTTP request.
	RequestTimeout time.Duration `koanf:"request_timeout" json:"request_timeout" yaml:"request_timeout"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:         "localhost:8080",
		Output:         "table",
		Color:          true,
		PollInterval:   1 * time.Second,
		RetryInterval:  5 * time.Second,
		RequestTimeout: 10 * time.Second,
	}
}
