package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the TaskFlow CLI.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

var userConfigDir = os.UserConfigDir

// LoadDefaults points the CLI at a local server and keeps the token under
// the user's config directory.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second

	dir, err := userConfigDir()
	if err != nil {
		dir = "."
	}
	c.TokenFile = filepath.Join(dir, "taskflow", "token")
}

// Load applies defaults, the JSON file, the environment and the flags in
// args, and returns the arguments that follow the flags.
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, nil, err
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
