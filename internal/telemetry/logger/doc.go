// Package logger provides structured logging for tablesync.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler construction, global level, package-level helpers
//   - context.go: logger and request ID propagation through context
//
// The level is held in a single slog.LevelVar shared by every logger built
// with New, so SetLevel takes effect immediately, including for loggers
// created before the call. The server uses this for config hot reload.
package logger
