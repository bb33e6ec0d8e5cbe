// Package confloader loads configuration from layered sources with koanf.
//
// Priority (highest to lowest):
//
//  1. Maps loaded with LoadMap (command-line flags)
//  2. Environment variables
//  3. YAML configuration file
//  4. Values already present in the target struct (defaults)
//
// Watcher reports writes to configuration files through fsnotify so the
// server can apply changes without restarting.
package confloader
