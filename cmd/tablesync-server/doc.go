// Package main provides the entry point for tablesync-server.
//
// The server owns an in-memory, revision-tracked table and serves it over
// HTTP so clients can fetch the full state or only the rows changed since a
// revision they already hold.
//
// Usage:
//
//	tablesync-server [flags]
//	tablesync-server -config /path/to/server.yaml -addr 0.0.0.0:8080
//
// Editing log.level in the config file while the server runs changes the
// log level without a restart.
package main
