package config

import (
	"flag"
	"fmt"
	"io"
)

// parseFlags reads the CLI flags from args and returns the remaining
// positional arguments. -c/-config is accepted here so it can precede the
// command, but the file itself is read by parseJson.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("taskflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configFile string
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the TaskFlow API")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "file holding the saved access token")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&configFile, "c", "", "path to config file (short)")
	fs.StringVar(&configFile, "config", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return fs.Args(), nil
}
