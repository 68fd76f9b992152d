// Package config resolves the libris client configuration from defaults, an
// optional YAML file, a .env file, LIBRIS_* environment variables and
// command-line overrides, in increasing order of precedence.
package config

import (
	"path/filepath"
	"time"
)

// Defaults.
const (
	DefaultAPIURL             = "http://localhost:8080"
	DefaultTimeout            = 15 * time.Second
	DefaultLogLevel           = "info"
	DefaultSchemePollInterval = 5 * time.Second

	dirName = ".libris"
)

// Config is the resolved client configuration.
type Config struct {
	APIURL             string        `yaml:"api_url" validate:"required,http_url"`
	Timeout            time.Duration `yaml:"timeout" validate:"gt=0"`
	StatePath          string        `yaml:"state_path" validate:"required"`
	LogFile            string        `yaml:"log_file"`
	LogLevel           string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	SchemePollInterval time.Duration `yaml:"scheme_poll_interval" validate:"gt=0"`
}

// Default returns the built-in configuration rooted at home.
func Default(home string) Config {
	base := filepath.Join(home, dirName)
	return Config{
		APIURL:             DefaultAPIURL,
		Timeout:            DefaultTimeout,
		StatePath:          filepath.Join(base, "state.yaml"),
		LogFile:            filepath.Join(base, "libris.log"),
		LogLevel:           DefaultLogLevel,
		SchemePollInterval: DefaultSchemePollInterval,
	}
}

// DefaultConfigPath is where Load looks for a config file when none is given.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, dirName, "config.yaml")
}
