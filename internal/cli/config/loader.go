package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/tablesync-go/internal/cli/output"
	"github.com/yndnr/tablesync-go/internal/infra/confloader"
)

// EnvPrefix is the environment variable prefix for CLI settings.
const EnvPrefix = "TABLESYNC_CLI_"

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".tablesync", "cli.yaml")
}

// Load builds the CLI configuration. An explicit path must exist; the
// default path is used only if present. overrides holds flag values keyed
// by koanf path (e.g. "poll_interval").
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithEnvPrefix(EnvPrefix),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Verify checks the configuration.
func Verify(cfg *CLIConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Server) == "" {
		errs = append(errs, errors.New("server is required"))
	}
	if _, err := output.ParseFormat(cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if cfg.PollInterval <= 0 {
		errs = append(errs, errors.New("poll_interval must be positive"))
	}
	if cfg.RetryInterval <= 0 {
		errs = append(errs, errors.New("retry_interval must be positive"))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}

	return errors.Join(errs...)
}
