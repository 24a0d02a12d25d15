package config

import (
	"flag"
	"strings"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP listen address (e.g. ":8080")
//	-b string   store backend: json, sqlite or memory
//	-f string   store path (JSON file or SQLite DSN)
//	-t string   templates directory
//	-k int      bcrypt cost
//	-l string   log level
//	-o string   log format: text or json
//	-c string   JSON config file (handled by parseJSON)
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend (json, sqlite, memory)")
	fs.StringVar(&config.StorePath, "f", config.StorePath, "store path (JSON file or SQLite DSN)")
	fs.StringVar(&config.TemplatesDir, "t", config.TemplatesDir, "templates directory")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogFormat, "o", config.LogFormat, "log format (text, json)")

	// Accepted here so -c does not fail parsing; the value is read by parseJSON.
	var ignored string
	fs.StringVar(&ignored, "c", "", "path to JSON config file")
	fs.StringVar(&ignored, "config", "", "path to JSON config file")

	return fs.Parse(args)
}

// filterArgs returns the arguments that belong to allowedFlags, together
// with their values. Both "-f value" and "-f=value" forms are recognised.
func filterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}
