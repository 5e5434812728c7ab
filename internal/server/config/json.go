package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations accept
// both "1h" strings and integer nanoseconds. Absent keys keep the value the
// Config already holds.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	Environment                 string         `json:"environment"`
	StorageDriver               string         `json:"storage_driver"`
	DatabaseDSN                 string         `json:"database_dsn"`
	MongoDatabase               string         `json:"mongo_database"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	LogLevel                    string         `json:"log_level"`
	OTLPEndpoint                string         `json:"otlp_endpoint"`
	ServiceName                 string         `json:"service_name"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config onto config.
// Nothing happens when no file is given.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{
		HTTPAddr:                    config.HTTPAddr,
		Environment:                 config.Environment,
		StorageDriver:               config.StorageDriver,
		DatabaseDSN:                 config.DatabaseDSN,
		MongoDatabase:               config.MongoDatabase,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: config.AccessTokenValidityDuration},
		BcryptCost:                  config.BcryptCost,
		CORSAllowedOrigins:          config.CORSAllowedOrigins,
		LogLevel:                    config.LogLevel,
		OTLPEndpoint:                config.OTLPEndpoint,
		ServiceName:                 config.ServiceName,
		ShutdownTimeout:             timex.Duration{Duration: config.ShutdownTimeout},
	}

	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.Environment = c.Environment
	config.StorageDriver = c.StorageDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.MongoDatabase = c.MongoDatabase
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.CORSAllowedOrigins = c.CORSAllowedOrigins
	config.LogLevel = c.LogLevel
	config.OTLPEndpoint = c.OTLPEndpoint
	config.ServiceName = c.ServiceName
	config.ShutdownTimeout = c.ShutdownTimeout.Duration

	return nil
}
