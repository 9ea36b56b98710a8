// Package config handles configuration for the PhoneSaver CLI,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the PhoneSaver CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - DataDir: directory for the local cache database.
//   - KeyFilePath: location of the phone-encryption key file.
type Config struct {
	ServerURL   string
	DataDir     string
	KeyFilePath string
}

// LoadDefaults populates c with sensible defaults. The cache and the key
// live under ~/.phonesaver.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".phonesaver")
	c.ServerURL = "http://127.0.0.1:8080"
	c.DataDir = base
	c.KeyFilePath = filepath.Join(base, "phone.key")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
