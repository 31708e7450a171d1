package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the respvars configuration
type Config struct {
	Store       string            `json:"store,omitempty"`       // store connection string
	RedisPrefix string            `json:"redisPrefix,omitempty"` // key prefix for redis stores
	LogLevel    string            `json:"logLevel,omitempty"`
	LogFormat   string            `json:"logFormat,omitempty"` // text or json
	Timeout     int               `json:"timeout,omitempty"`   // milliseconds
	Headers     map[string]string `json:"headers,omitempty"`   // Default headers for fetch
	Insecure    *bool             `json:"insecure,omitempty"`
	Verbose     *bool             `json:"verbose,omitempty"`
	NoColor     *bool             `json:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetInsecure returns the insecure setting, defaulting to false
func (c *Config) GetInsecure() bool {
	return getBool(c.Insecure, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".respvars.config.json",
	"respvars.config.json",
	".respvarsrc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Store != "" {
		result.Store = other.Store
	}
	if other.RedisPrefix != "" {
		result.RedisPrefix = other.RedisPrefix
	}
	if other.LogLevel != "" {
		result.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		result.LogFormat = other.LogFormat
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Insecure != nil {
		result.Insecure = other.Insecure
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(c.Headers)+len(other.Headers))
		for k, v := range c.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
