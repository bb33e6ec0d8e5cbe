// Package main provides the entry point for tablesync-cli.
//
// The CLI watches a tablesync server and edits its table:
//
//   - watch: print the table, then stream changes until interrupted
//   - show, changes: one-shot reads
//   - add, remove: mutations, printing the resulting table
//   - health, version, config: diagnostics
//
// Usage:
//
//	tablesync-cli [global flags] command [flags]
//	tablesync-cli -s localhost:8080 watch --poll-interval 500ms
//	tablesync-cli add --id 4 --name XRP --price 0.5
//	tablesync-cli -o json changes --since 3
package main
