package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
)

var serverFlags = []string{"-a", "-e", "-g", "-d", "-n", "-s", "-t", "-b", "-o", "-l", "-x"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-e string   environment name
//	-g string   storage driver: postgres, sqlite, mongo, memory
//	-d string   database DSN / SQLite file / MongoDB URI
//	-n string   MongoDB database name
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-b int      bcrypt cost
//	-o string   comma-separated CORS origins
//	-l string   log level
//	-x string   OTLP/HTTP traces endpoint
//
// Other arguments (for instance -c) are filtered out with flagx.FilterArgs.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment name")
	fs.StringVar(&config.StorageDriver, "g", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "mongo database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "comma-separated CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.OTLPEndpoint, "x", config.OTLPEndpoint, "OTLP traces endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
		case "o":
			config.CORSAllowedOrigins = splitList(*origins)
		}
	})

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
