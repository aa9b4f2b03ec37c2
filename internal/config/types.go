package config

import "time"

// Config is the top-level configuration structure for surgetop.
type Config struct {
	HTTPAPI HTTPAPIConfig `yaml:"httpApi"`
	CLI     CLIConfig     `yaml:"cli"`
	UI      UIConfig      `yaml:"ui"`
}

// HTTPAPIConfig describes how to reach Surge's HTTP API.
type HTTPAPIConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
	// Key must match the x-key value in the Surge profile's http-api
	// section. There is no usable default.
	Key string `yaml:"key,omitempty"`
}

// CLIConfig describes the surge-cli executable.
type CLIConfig struct {
	Path string `yaml:"path,omitempty"`
}

// UIConfig holds dashboard behavior settings.
type UIConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`
	MaxRequests     int           `yaml:"maxRequests,omitempty"`
	// Language selects the display locale, e.g. "en-US" or "zh-CN".
	Language string `yaml:"language,omitempty"`
}
