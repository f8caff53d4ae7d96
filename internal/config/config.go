// Package config loads runtime settings for the predators command
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvDataset     = "PREDATORS_DATASET"
	EnvLogLevel    = "PREDATORS_LOG_LEVEL"
	EnvLogPretty   = "PREDATORS_LOG_PRETTY"
	EnvMetricsAddr = "PREDATORS_METRICS_ADDR"
)

// Config holds settings read from the environment
type Config struct {
	Dataset     string // dataset path; empty selects the embedded dataset
	LogLevel    string // debug, info, warn, error
	LogPretty   bool
	MetricsAddr string // observability listen address; empty disables it
}

// Default returns the built-in settings
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads an optional .env file and then the process environment
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. A missing file is not an error;
// variables already set in the environment take precedence over the file.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if v, ok := os.LookupEnv(EnvDataset); ok {
		cfg.Dataset = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogPretty); ok && v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvLogPretty, err)
		}
		cfg.LogPretty = pretty
	}
	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		cfg.MetricsAddr = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.Required,
			validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MetricsAddr, validation.Length(0, 255)),
	)
}
