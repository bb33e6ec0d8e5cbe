// Package config provides server configuration for tablesync.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation
//   - load.go: loading through internal/infra/confloader
//
// Sources, lowest to highest priority: defaults, YAML file, TABLESYNC_*
// environment variables, command-line flags.
package config
