// Package config handles the XDG configuration directory and the layered
// client settings (defaults, config file, environment, flags).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the base name of the optional config file (config.yaml).
	ConfigFile = "config"

	// DebugLogFile is the log file used by the terminal UI when --debug is set.
	DebugLogFile = "debug.log"

	// DefaultAPIURL is used when no base URL is configured anywhere.
	DefaultAPIURL = "http://localhost:5000/api"

	// DefaultFilter is the listing filter used when none is configured.
	DefaultFilter = "all"
)

// ErrInvalidConfig is wrapped by every validation failure in Load.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task collection API, without a trailing slash.
	APIURL string

	// RequestTimeout bounds each API request. Zero means no timeout.
	RequestTimeout time.Duration

	// DefaultFilter is the filter used by list-like commands when --filter is not given.
	DefaultFilter string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with defaults only, rooted at the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		APIURL:        DefaultAPIURL,
		DefaultFilter: DefaultFilter,
	}
}

// Load reads settings for the given config directory. Precedence, lowest
// first: built-in defaults, <dir>/config.yaml, environment variables.
// Command-line overrides are applied by the caller with SetAPIURL.
//
// Recognised environment variables: TODO_API_URL (also API_URL and
// VITE_API_URL), TODO_REQUEST_TIMEOUT, TODO_DEFAULT_FILTER.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	v := viper.New()
	v.SetConfigName(ConfigFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.Dir)

	v.SetDefault("api_url", cfg.APIURL)
	v.SetDefault("request_timeout", "0s")
	v.SetDefault("default_filter", cfg.DefaultFilter)

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_url", "TODO_API_URL", "API_URL", "VITE_API_URL"); err != nil {
		return nil, fmt.Errorf("binding api_url: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, cfg.Path(), err)
		}
	}

	timeout, err := parseTimeout(v.GetString("request_timeout"))
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	if err := cfg.SetAPIURL(v.GetString("api_url")); err != nil {
		return nil, err
	}

	filter := strings.ToLower(strings.TrimSpace(v.GetString("default_filter")))
	switch filter {
	case "all", "active", "completed":
		cfg.DefaultFilter = filter
	default:
		return nil, fmt.Errorf("%w: default_filter must be all, active or completed, got %q", ErrInvalidConfig, filter)
	}

	return cfg, nil
}

// SetAPIURL validates and stores the base URL. Trailing slashes are dropped so
// endpoint paths can be appended directly.
func (c *Config) SetAPIURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: api_url is empty", ErrInvalidConfig)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: api_url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api_url must be an http or https URL, got %q", ErrInvalidConfig, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api_url has no host: %q", ErrInvalidConfig, raw)
	}
	c.APIURL = strings.TrimRight(raw, "/")
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: request_timeout: %v", ErrInvalidConfig, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: request_timeout must not be negative", ErrInvalidConfig)
	}
	return d, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path of the optional config file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile+".yaml")
}

// DebugLogPath returns the path of the terminal UI debug log.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
