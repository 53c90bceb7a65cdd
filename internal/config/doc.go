// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.familytree/familytree.toml or OS-specific config directory)
// 3. Project config file (familytree.toml or .familytree.toml in the working directory)
// 4. A .env file in the working directory (never overrides the real environment)
// 5. Environment variables (FAMILYTREE_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.familytree/familytree.toml (preferred)
// - Windows: %APPDATA%\familytree\familytree.toml
// - macOS: ~/Library/Application Support/familytree/familytree.toml
// - Linux/BSD: $XDG_CONFIG_HOME/familytree/familytree.toml or ~/.config/familytree/familytree.toml
package config
