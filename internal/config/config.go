// Package config provides hierarchical configuration for unclog using koanf.
// Configuration is loaded with priority: environment variables > project config
// (<root>/config.yml) > user config (~/.config/unclog/config.yml) > defaults.
// The project config may also be the legacy <root>/config.json.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/unclog-go/unclog/internal/changelog"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "UNCLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the unclog configuration
type Configuration struct {
	// Heading is the first line of the rendered changelog.
	Heading string `koanf:"heading" yaml:"heading" validate:"required"`
	// UnreleasedHeading is the title of the pending bucket.
	UnreleasedHeading string `koanf:"unreleased_heading" yaml:"unreleased_heading" validate:"required"`
	// Bullet is the list marker for components and entries.
	Bullet string `koanf:"bullet" yaml:"bullet" validate:"oneof=- * +"`
	// Ignore lists doublestar patterns the scanner skips.
	// Can be set via UNCLOG_IGNORE as a comma separated list.
	Ignore []string `koanf:"ignore" yaml:"ignore" validate:"dive,required"`
	// WatchDebounce is how long build --watch waits for changes to settle.
	WatchDebounce time.Duration `koanf:"watch_debounce" yaml:"watch_debounce" validate:"gte=0"`

	// Sources lists the layers that contributed to this configuration, lowest
	// priority first.
	Sources []ConfigSource `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Root is the changelog directory holding the project config.
	Root string
	// UserConfigPath overrides the user config path (default: UserConfigPath()).
	UserConfigPath string
	// SkipUser ignores the user config entirely.
	SkipUser bool
}

// Load loads configuration for the changelog at root.
func Load(root string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{Root: root})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := []ConfigSource{SourceDefault}

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	if !opts.SkipUser {
		loaded, err := loadUserConfig(k, opts.UserConfigPath)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, SourceUser)
		}
	}

	if opts.Root != "" {
		loaded, err := loadProjectConfig(k, opts.Root)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, SourceProject)
		}
	}

	loaded, err := loadEnvironmentConfig(k)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceEnv)
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) error {
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}
	return nil
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) (bool, error) {
	path := customPath
	if path == "" {
		var err error
		if path, err = UserConfigPath(); err != nil {
			return false, nil
		}
	}
	if !fileExists(path) {
		return false, nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return false, fmt.Errorf("loading user config: %w", err)
	}
	return true, nil
}

// loadProjectConfig loads <root>/config.yml, falling back to the legacy
// <root>/config.json. When both exist the YAML file wins.
func loadProjectConfig(k *koanf.Koanf, root string) (bool, error) {
	yamlPath := ProjectConfigPath(root)
	if fileExists(yamlPath) {
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return false, fmt.Errorf("loading project config: %w", err)
		}
		return true, nil
	}

	jsonPath := LegacyProjectConfigPath(root)
	if fileExists(jsonPath) {
		if err := k.Load(file.Provider(jsonPath), json.Parser()); err != nil {
			return false, fmt.Errorf("failed to load legacy project config %s: %w", jsonPath, err)
		}
		return true, nil
	}
	return false, nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) (bool, error) {
	found := false
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		name := envTransform(key)
		if _, known := GetDefaults()[name]; !known {
			return "", nil
		}
		found = true
		if name == "ignore" {
			return name, splitList(value)
		}
		return name, value
	})
	if err := k.Load(provider, nil); err != nil {
		return false, fmt.Errorf("failed to load environment config: %w", err)
	}
	return found, nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ValidationError{
			FilePath: "config",
			Message:  strings.Join(strings.Fields(err.Error()), " "),
		}
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// RenderOptions returns the renderer settings.
func (c *Configuration) RenderOptions() changelog.RenderOptions {
	return changelog.RenderOptions{
		Heading:           c.Heading,
		UnreleasedHeading: c.UnreleasedHeading,
		Bullet:            c.Bullet,
	}
}

// ScanOptions returns the scanner settings.
func (c *Configuration) ScanOptions() changelog.ScanOptions {
	return changelog.ScanOptions{Ignore: c.Ignore}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: UNCLOG_UNRELEASED_HEADING -> unreleased_heading
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
