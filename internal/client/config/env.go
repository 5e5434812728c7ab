package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type EnvConfig struct {
	ServerURL      string        `env:"SERVER_URL"`
	TokenFile      string        `env:"TOKEN_FILE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

func parseEnv(cfg *Config) error {
	c := EnvConfig{
		ServerURL:      cfg.ServerURL,
		TokenFile:      cfg.TokenFile,
		RequestTimeout: cfg.RequestTimeout,
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: "TASKFLOW_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.ServerURL = c.ServerURL
	cfg.TokenFile = c.TokenFile
	cfg.RequestTimeout = c.RequestTimeout
	return nil
}
