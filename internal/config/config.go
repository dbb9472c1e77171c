package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

var validate = validator.New(validator.WithRequiredStructEnabled())

type ShareConfig struct {
	Title string `yaml:"title"`
	// URLTemplate is opened in the browser to share a quote. {text} and
	// {url} are replaced with query-escaped values. Empty disables sharing
	// and share falls back to copy.
	URLTemplate string `yaml:"url_template" validate:"omitempty,startswith=http"`
}

type OfflineConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen" validate:"required,hostname_port"`
}

type BreakerConfig struct {
	MaxFailures uint32 `yaml:"max_failures" validate:"min=1"`
	Timeout     string `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file,omitempty"`
}

type Config struct {
	Endpoint       string        `yaml:"endpoint" validate:"required,http_url"`
	Categories     []string      `yaml:"categories" validate:"dive,required"`
	SearchDebounce string        `yaml:"search_debounce"`
	RequestTimeout string        `yaml:"request_timeout"`
	Share          ShareConfig   `yaml:"share"`
	Offline        OfflineConfig `yaml:"offline"`
	Breaker        BreakerConfig `yaml:"breaker"`
	Log            LogConfig     `yaml:"log"`
}

// DebounceDuration returns the search debounce window, defaulting to 250ms.
func (c *Config) DebounceDuration() time.Duration {
	return parseDuration(c.SearchDebounce, 250*time.Millisecond)
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	return parseDuration(c.RequestTimeout, 10*time.Second)
}

func (c *Config) BreakerTimeout() time.Duration {
	return parseDuration(c.Breaker.Timeout, 30*time.Second)
}

// ShareTitle returns the title passed to the share target.
func (c *Config) ShareTitle() string {
	if c.Share.Title == "" {
		return "LogosMaximus"
	}
	return c.Share.Title
}

// LogPath returns the log file path, defaulting to the XDG state dir.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, "logos", "logos.log")
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "logos", "config.yaml")
}

// DataPath is where persisted preferences and cached assets live.
func DataPath() string {
	return filepath.Join(xdg.DataHome, "logos", "logos.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// User values overlay the embedded defaults.
	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := check(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func check(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
