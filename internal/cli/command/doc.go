// Package command provides CLI command definitions for tablesync-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags and the per-invocation Runtime
//   - table.go: show, changes, add and remove
//   - watch.go: the live sync loop
//   - system.go: health and version
//   - config.go: effective CLI configuration
//
// Commands follow a consistent pattern of building a Runtime from flags
// and config, calling the server, and formatting the result.
package command
