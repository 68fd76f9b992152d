package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LIBRIS_"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// Path of the YAML file. Empty means the default location, which may be
	// absent. An explicit path must exist.
	Path string
	// EnvFile is a dotenv file whose values sit below the process
	// environment. Empty means ".env"; a missing file is ignored.
	EnvFile string
	// HomeDir replaces the user's home directory.
	HomeDir string
	// LookupEnv replaces os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Override runs last, before validation. Command-line flags use it.
	Override func(*Config)
}

// Load resolves and validates the configuration.
func Load(opts LoadOptions) (*Config, error) {
	home := opts.HomeDir
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		home = dir
	}

	cfg := Default(home)

	path := opts.Path
	optional := path == ""
	if optional {
		path = DefaultConfigPath(home)
	}
	if err := mergeFile(&cfg, expandHome(path, home), optional); err != nil {
		return nil, err
	}

	env, err := environment(opts)
	if err != nil {
		return nil, err
	}
	if err := mergeEnv(&cfg, env); err != nil {
		return nil, err
	}

	if opts.Override != nil {
		opts.Override(&cfg)
	}

	cfg.StatePath = expandHome(cfg.StatePath, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeFile(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return librisErrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return librisErrors.NewParseError(path, extractLine(err), err)
	}
	return nil
}

// environment returns the LIBRIS_* values, process environment winning over
// the dotenv file.
func environment(opts LoadOptions) (func(string) (string, bool), error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	fileValues, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, librisErrors.NewParseError(envFile, 0, err)
		}
		fileValues = map[string]string{}
	}

	return func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := fileValues[key]
		return value, ok
	}, nil
}

func mergeEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"API_URL":    &cfg.APIURL,
		"STATE_PATH": &cfg.StatePath,
		"LOG_FILE":   &cfg.LogFile,
		"LOG_LEVEL":  &cfg.LogLevel,
	}
	for suffix, target := range strs {
		if value, ok := lookup(EnvPrefix + suffix); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	durations := map[string]*time.Duration{
		"TIMEOUT":              &cfg.Timeout,
		"SCHEME_POLL_INTERVAL": &cfg.SchemePollInterval,
	}
	for suffix, target := range durations {
		value, ok := lookup(EnvPrefix + suffix)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			field := strings.ToLower(suffix)
			return librisErrors.NewValidationError(field, fmt.Sprintf("%s%s must be a duration such as 15s", EnvPrefix, suffix), err)
		}
		*target = parsed
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
