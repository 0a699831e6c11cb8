// Package config loads, validates and saves pubpager configuration.
//
// The global file lives at ~/.pubpager/config.yaml ($PUBPAGER_HOME overrides
// the directory). A project may carry .pubpager/config.yaml, whose top-level
// sections replace the global ones. Environment variables are applied last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/researchfolio/pubpager/internal/cache"
	"github.com/researchfolio/pubpager/internal/pagination"
	"github.com/researchfolio/pubpager/internal/render"
)

// Pagination strategies.
const (
	StrategyDynamic = "dynamic"
	StrategyStatic  = "static"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Environment overrides.
const (
	EnvHome      = "PUBPAGER_HOME"
	EnvSource    = "PUBPAGER_SOURCE"
	EnvPageSize  = "PUBPAGER_PAGE_SIZE"
	EnvLogLevel  = "PUBPAGER_LOG_LEVEL"
	EnvLogFormat = "PUBPAGER_LOG_FORMAT"
	EnvS2APIKey  = "S2_API_KEY"
)

// DefaultSource is the data file path used by the portfolio site.
const DefaultSource = "data/publications.json"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full pubpager configuration.
type Config struct {
	Source     string           `yaml:"source" json:"source"`
	Pagination PaginationConfig `yaml:"pagination" json:"pagination"`
	Highlight  HighlightConfig  `yaml:"highlight" json:"highlight"`
	Cache      CacheConfig      `yaml:"cache" json:"cache"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
	Scholar    ScholarConfig    `yaml:"scholar" json:"scholar"`

	configPath string
}

// PaginationConfig selects page size and strategy.
type PaginationConfig struct {
	PageSize int    `yaml:"page_size" json:"page_size"`
	Strategy string `yaml:"strategy" json:"strategy"`
}

// HighlightConfig lists the owner name patterns emphasised in author lists.
type HighlightConfig struct {
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// CacheConfig controls the HTTP response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ScholarConfig drives `pubpager sync`.
type ScholarConfig struct {
	AuthorID        string `yaml:"author_id,omitempty" json:"author_id,omitempty"`
	GoogleScholarID string `yaml:"google_scholar_id,omitempty" json:"google_scholar_id,omitempty"`
	APIKey          string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	Output          string `yaml:"output,omitempty" json:"output,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: DefaultSource,
		Pagination: PaginationConfig{
			PageSize: pagination.DefaultPageSize,
			Strategy: StrategyDynamic,
		},
		Highlight: HighlightConfig{
			Patterns: append([]string(nil), render.DefaultOwnerPatterns...),
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatConsole,
		},
		Scholar: ScholarConfig{
			Output: DefaultSource,
		},
	}
}

// Load reads the config file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadGlobal loads the config file from the config directory.
func LoadGlobal() (*Config, error) {
	path, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// Save writes the config as YAML to its load path, or to the global config
// file when it was not loaded from disk.
func (c *Config) Save() error {
	path := c.configPath
	if path == "" {
		p, err := ConfigFilePath()
		if err != nil {
			return err
		}
		path = p
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// ApplyEnv applies environment overrides. An unparsable page size is an error.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvPageSize, v)
		}
		c.Pagination.PageSize = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvS2APIKey); v != "" {
		c.Scholar.APIKey = v
	}
	return nil
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	if c.Pagination.PageSize < pagination.MinPageSize || c.Pagination.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("%w: pagination.page_size must be between %d and %d, got %d",
			ErrInvalidConfig, pagination.MinPageSize, pagination.MaxPageSize, c.Pagination.PageSize)
	}

	switch c.Pagination.Strategy {
	case StrategyDynamic, StrategyStatic:
	default:
		return fmt.Errorf("%w: pagination.strategy must be %q or %q, got %q",
			ErrInvalidConfig, StrategyDynamic, StrategyStatic, c.Pagination.Strategy)
	}

	switch c.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: logging.format must be %q or %q, got %q",
			ErrInvalidConfig, LogFormatConsole, LogFormatJSON, c.Logging.Format)
	}

	for _, p := range c.Highlight.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: highlight pattern %q: %w", ErrInvalidConfig, p, err)
		}
	}

	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("%w: cache.ttl_seconds cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// CacheDirectory returns the configured cache directory or the default under
// the config directory.
func (c *Config) CacheDirectory() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}
