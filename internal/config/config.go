// Package config handles configuration for the registration server,
// including defaults, the PORT environment variable, a JSON overlay and
// command-line flags.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/user-registration/app/internal/database"
	"github.com/user-registration/app/internal/logging"
)

// Config holds runtime settings for the registration server.
//
// Fields:
//   - Addr: listen address for the HTTP server.
//   - StoreBackend: "json", "sqlite" or "memory".
//   - StorePath: JSON file path or SQLite data source name.
//   - TemplatesDir: directory holding layout.html and the page templates.
//   - BcryptCost: work factor used to hash passwords.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
type Config struct {
	Addr         string
	StoreBackend string
	StorePath    string
	TemplatesDir string
	BcryptCost   int
	LogLevel     string
	LogFormat    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.StoreBackend = database.BackendJSON
	c.StorePath = "users.json"
	c.TemplatesDir = "web/templates"
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config by applying defaults, the PORT environment
// variable, an optional JSON file (-c / -config) and finally the
// command-line flags in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case database.BackendJSON, database.BackendSQLite, database.BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.StoreBackend != database.BackendMemory && c.StorePath == "" {
		return fmt.Errorf("store path is required for the %s backend", c.StoreBackend)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}
