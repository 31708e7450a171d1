package config

// DefaultStore is the store used when none is configured.
const DefaultStore = "sqlite://.respvars.db"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Store:     DefaultStore,
		LogLevel:  "warn",
		LogFormat: "text",
		Timeout:   30000, // 30 seconds
	}
}
