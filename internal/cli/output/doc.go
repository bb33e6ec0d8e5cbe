// Package output provides output formatting for tablesync-cli.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: tabwriter-based tables, with rows of a table state rendered
//     as "id  name  price"
//   - json.go, yaml.go: machine-readable output
//   - styles.go: lipgloss styles (green prices, dim headers)
//   - renderer.go: the watch renderer, which prints the initial state,
//     change batches and failure notices
package output
