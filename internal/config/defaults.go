package config

import "time"

const (
	// DefaultCLIPath is where the Surge app ships its command line tool.
	DefaultCLIPath = "/Applications/Surge.app/Contents/Applications/surge-cli"

	defaultHost            = "127.0.0.1"
	defaultPort            = 6171
	defaultRefreshInterval = time.Second
	defaultMaxRequests     = 100
	defaultLanguage        = "en-US"
)

// DefaultConfig returns the built-in defaults. The API key has no default
// and must come from a config file or SURGE_HTTP_API_KEY.
func DefaultConfig() Config {
	return Config{
		HTTPAPI: HTTPAPIConfig{
			Host: defaultHost,
			Port: defaultPort,
		},
		CLI: CLIConfig{
			Path: DefaultCLIPath,
		},
		UI: UIConfig{
			RefreshInterval: defaultRefreshInterval,
			MaxRequests:     defaultMaxRequests,
			Language:        defaultLanguage,
		},
	}
}

// ExampleConfig is printed when no API key is configured, so users can copy
// it into ~/.config/surgetop/config.yaml.
const ExampleConfig = `httpApi:
  host: 127.0.0.1
  port: 6171
  key: your-api-key
cli:
  path: /Applications/Surge.app/Contents/Applications/surge-cli
ui:
  refreshInterval: 1s
  maxRequests: 100
  language: en-US
`
