// Package config defines the tablesync-cli configuration.
//
// Settings are layered, later sources winning:
//
//  1. Default()
//  2. the YAML file (--config, or ~/.tablesync/cli.yaml when present)
//  3. TABLESYNC_CLI_* environment variables
//  4. command-line flags
package config
