package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/gnana997/showcase/catalogs"
	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/prefs"
)

const (
	configName      = ".showcase" // .yaml is implicit
	envPrefix       = "SHOWCASE"
	configPathEnv   = "SHOWCASE_CONFIG_PATH"
	embeddedCatalog = "<embedded>"
)

// Config is the merged result of .showcase.yaml, SHOWCASE_* variables and
// flags.
type Config struct {
	CatalogPath   string      `mapstructure:"catalog_path"`
	ComponentsDir string      `mapstructure:"components_dir"`
	StateDir      string      `mapstructure:"state_dir" validate:"required"`
	Log           LogConfig   `mapstructure:"log"`
	Serve         ServeConfig `mapstructure:"serve"`
	Watch         WatchConfig `mapstructure:"watch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	// File receives one JSON line per MCP tool call. Empty disables it.
	File string `mapstructure:"file"`
}

type ServeConfig struct {
	Transport string `mapstructure:"transport" validate:"oneof=stdio http"`
	Addr      string `mapstructure:"addr" validate:"required_if=Transport http"`
	Path      string `mapstructure:"path"`
}

type WatchConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	DebounceMs int  `mapstructure:"debounce_ms" validate:"gte=0,lte=60000"`
}

// Debounce returns DebounceMs as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

var configValidator = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog_path", "")
	v.SetDefault("components_dir", "")
	v.SetDefault("state_dir", prefs.DefaultDir)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("serve.transport", "stdio")
	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("serve.path", "/mcp")
	v.SetDefault("watch.enabled", true)
	v.SetDefault("watch.debounce_ms", 200)
}

// newViper returns a viper instance with defaults and env binding. When
// configFile is empty, .showcase.yaml is searched in $SHOWCASE_CONFIG_PATH,
// the working directory and the home directory.
func newViper(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if override := os.Getenv(configPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// loadConfig reads the config file, if any, and decodes and validates the
// merged settings. A missing config file is not an error.
func loadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := configValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", formatValidationErrors(err))
	}
	return &cfg, nil
}

func formatValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: failed validation for tag '%s'", strings.ToLower(fe.Namespace()), fe.Tag()))
	}
	return errors.Join(errs...)
}

// resolveCatalogPath applies the fallback chain:
//  1. Explicit --catalog flag value
//  2. catalog_path from config or SHOWCASE_CATALOG_PATH
//  3. The embedded default catalog (returned as "")
func resolveCatalogPath(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return ""
}

// loadCatalog loads path, or the embedded catalog when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.LoadFromBytes(catalogs.DefaultYAML)
		if err != nil {
			return nil, fmt.Errorf("embedded catalog: %w", err)
		}
		return cat, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand catalog path: %w", err)
	}
	return catalog.LoadFromFile(expanded)
}

func catalogLabel(path string) string {
	if path == "" {
		return embeddedCatalog
	}
	return path
}
