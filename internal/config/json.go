package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
)

// JsonConfig mirrors Config for unmarshalling configuration files. Fields
// left out of the file keep the values already set on Config.
type JsonConfig struct {
	Addr         string `json:"addr"`
	StoreBackend string `json:"store_backend"`
	StorePath    string `json:"store_path"`
	TemplatesDir string `json:"templates_dir"`
	BcryptCost   int    `json:"bcrypt_cost"`
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
}

// jsonConfigPath extracts the config file path given with -c or -config.
// Other arguments are ignored.
func jsonConfigPath(args []string) (string, error) {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	if err := fs.Parse(filterArgs(args, []string{"-c", "-config", "--c", "--config"})); err != nil {
		return "", err
	}
	return path, nil
}

// parseJSON loads configuration values from the JSON file named on the
// command line into config. Without -c/-config nothing is loaded.
func parseJSON(config *Config, args []string) error {
	path, err := jsonConfigPath(args)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.Addr, c.Addr)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.StorePath, c.StorePath)
	setString(&config.TemplatesDir, c.TemplatesDir)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
