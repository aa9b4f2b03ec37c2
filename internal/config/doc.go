// Package config provides configuration management for surgetop.
//
// Configuration is layered: built-in defaults, then the user config at
// ~/.config/surgetop/config.yaml, then a project-local .surgetop/config.yaml,
// then SURGE_* environment variables. Later sources override earlier ones.
package config
