package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	General struct {
		Organization string `koanf:"organization"`
		Project      string `koanf:"project"`
		BaseURL      string `koanf:"base_url"`
	} `koanf:"general"`

	Auth struct {
		Token string `koanf:"token"`
	} `koanf:"auth"`

	Output struct {
		Verbose bool `koanf:"verbose"`
	} `koanf:"output"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"general.base_url": "https://dev.azure.com",
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./adoview.toml", "$HOME/.adoview.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix ADOVIEW_
	k.Load(env.Provider("ADOVIEW_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ADOVIEW_")), "_", ".", -1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	// Create sample configuration
	sampleConfig := `# adoview Configuration

[general]
organization = "your-organization"
project = "your-project"
# base_url = "https://dev.azure.com"

[auth]
token = "your-personal-access-token"

[output]
verbose = false
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.General.Organization == "" {
		return fmt.Errorf("organization is required")
	}

	if config.General.Project == "" {
		return fmt.Errorf("project is required")
	}

	if config.Auth.Token == "" {
		return fmt.Errorf("auth token is required")
	}

	return nil
}
