// Package config handles configuration for the noteboard client: defaults,
// environment overlay, and command-line flags, later sources winning.
package config

// Config holds the three backend base addresses. Each service is
// independently owned and independently addressable.
type Config struct {
	UsersURL     string
	NotesURL     string
	AnalyticsURL string
}

// LoadDefaults populates c with the fixed local development addresses.
func (c *Config) LoadDefaults() {
	c.UsersURL = "http://localhost:8002"
	c.NotesURL = "http://localhost:8001"
	c.AnalyticsURL = "http://localhost:8003"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment and from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
