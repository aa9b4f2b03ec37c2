package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"surgetop/internal/surge"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osGetenv = os.Getenv

const (
	userConfigDir    = ".config/surgetop"
	projectConfigDir = ".surgetop"
	configFileName   = "config.yaml"
)

// LoadConfig loads the surgetop configuration by layering defaults, the user
// config, the project config, and SURGE_* environment variables. A non-empty
// explicitPath bypasses the user/project layering and loads that file alone;
// unlike the layered paths it must exist.
func LoadConfig(explicitPath string) (Config, error) {
	cfg := DefaultConfig()

	if explicitPath != "" {
		fileCfg, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		cfg = mergeConfigs(cfg, fileCfg)
		applyEnvOverrides(&cfg)
		return cfg, nil
	}

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userCfg, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		cfg = mergeConfigs(cfg, userCfg)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectCfg, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		cfg = mergeConfigs(cfg, projectCfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeConfigs merges 'overlay' into 'base'; zero values in the overlay keep
// the base value.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.HTTPAPI.Host != "" {
		merged.HTTPAPI.Host = overlay.HTTPAPI.Host
	}
	if overlay.HTTPAPI.Port != 0 {
		merged.HTTPAPI.Port = overlay.HTTPAPI.Port
	}
	if overlay.HTTPAPI.Key != "" {
		merged.HTTPAPI.Key = overlay.HTTPAPI.Key
	}
	if overlay.CLI.Path != "" {
		merged.CLI.Path = overlay.CLI.Path
	}
	if overlay.UI.RefreshInterval != 0 {
		merged.UI.RefreshInterval = overlay.UI.RefreshInterval
	}
	if overlay.UI.MaxRequests != 0 {
		merged.UI.MaxRequests = overlay.UI.MaxRequests
	}
	if overlay.UI.Language != "" {
		merged.UI.Language = overlay.UI.Language
	}

	return merged
}

func applyEnvOverrides(cfg *Config) {
	if v := osGetenv("SURGE_HTTP_API_HOST"); v != "" {
		cfg.HTTPAPI.Host = v
	}
	if v := osGetenv("SURGE_HTTP_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTPAPI.Port = port
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring invalid SURGE_HTTP_API_PORT %q\n", v)
		}
	}
	if v := osGetenv("SURGE_HTTP_API_KEY"); v != "" {
		cfg.HTTPAPI.Key = v
	}
	if v := osGetenv("SURGE_CLI_PATH"); v != "" {
		cfg.CLI.Path = v
	}
	if v := osGetenv("SURGE_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UI.RefreshInterval = d
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring invalid SURGE_REFRESH_INTERVAL %q\n", v)
		}
	}
}

// Validate checks that the configuration is usable for talking to Surge.
// Failures carry surge.KindConfigInvalid so callers can branch on the class.
func (c Config) Validate() error {
	if c.HTTPAPI.Key == "" {
		return configInvalid("no API key configured: set httpApi.key in %s or export SURGE_HTTP_API_KEY", filepath.Join("~", userConfigDir, configFileName))
	}
	if c.HTTPAPI.Port <= 0 || c.HTTPAPI.Port > 65535 {
		return configInvalid("invalid HTTP API port %d", c.HTTPAPI.Port)
	}
	if c.UI.RefreshInterval < 100*time.Millisecond {
		return configInvalid("refresh interval %s is below the 100ms minimum", c.UI.RefreshInterval)
	}
	return nil
}

func configInvalid(format string, args ...any) error {
	return &surge.Error{Kind: surge.KindConfigInvalid, Message: fmt.Sprintf(format, args...)}
}
