package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig maps TASKFLOW_* environment variables. Unset variables leave the
// corresponding Config field untouched.
type EnvConfig struct {
	HTTPAddr                    string        `env:"HTTP_ADDR"`
	Environment                 string        `env:"ENVIRONMENT"`
	StorageDriver               string        `env:"STORAGE_DRIVER"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	MongoDatabase               string        `env:"MONGO_DATABASE"`
	SecretKey                   string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_VALIDITY"`
	BcryptCost                  int           `env:"BCRYPT_COST"`
	CORSAllowedOrigins          []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel                    string        `env:"LOG_LEVEL"`
	OTLPEndpoint                string        `env:"OTLP_ENDPOINT"`
	ServiceName                 string        `env:"SERVICE_NAME"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

const envPrefix = "TASKFLOW_"

// dotenvFile is loaded, when present, before the environment is read.
// Variables already set in the process environment win over the file.
var dotenvFile = ".env"

func parseEnv(config *Config) error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	c := EnvConfig{
		HTTPAddr:                    config.HTTPAddr,
		Environment:                 config.Environment,
		StorageDriver:               config.StorageDriver,
		DatabaseDSN:                 config.DatabaseDSN,
		MongoDatabase:               config.MongoDatabase,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: config.AccessTokenValidityDuration,
		BcryptCost:                  config.BcryptCost,
		CORSAllowedOrigins:          config.CORSAllowedOrigins,
		LogLevel:                    config.LogLevel,
		OTLPEndpoint:                config.OTLPEndpoint,
		ServiceName:                 config.ServiceName,
		ShutdownTimeout:             config.ShutdownTimeout,
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.Environment = c.Environment
	config.StorageDriver = c.StorageDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.MongoDatabase = c.MongoDatabase
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration
	config.BcryptCost = c.BcryptCost
	config.CORSAllowedOrigins = c.CORSAllowedOrigins
	config.LogLevel = c.LogLevel
	config.OTLPEndpoint = c.OTLPEndpoint
	config.ServiceName = c.ServiceName
	config.ShutdownTimeout = c.ShutdownTimeout

	return nil
}
