package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvConfig points at an explicit config file.
const EnvConfig = "TERMHOME_CONFIG"

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
	DriverMemory = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Config holds application configuration.
type Config struct {
	Content ContentConfig
	Storage StorageConfig
	Log     LogConfig
	Feeds   FeedsConfig
	Links   LinksConfig
	UI      UIConfig
}

// ContentConfig locates the markdown content tree.
type ContentConfig struct {
	Dir         string
	LatestPosts int `mapstructure:"latest_posts"`
}

// StorageConfig selects where layout and preference state lives.
type StorageConfig struct {
	Driver       string
	Path         string
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
	File  string
}

// FeedsConfig holds settings for the API widget and comic fetchers.
type FeedsConfig struct {
	Timeout time.Duration
	XKCD    bool `mapstructure:"xkcd"`
}

// LinksConfig holds settings for check-links.
type LinksConfig struct {
	Concurrency int
	Timeout     time.Duration

	// ExcludeDomains are hosts that answer 404 for private pages.
	ExcludeDomains []string `mapstructure:"exclude_domains"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// StackBreakpoint is the terminal width below which the two columns
	// stack vertically and cross-column drag is disabled.
	StackBreakpoint int `mapstructure:"stack_breakpoint"`

	// MarkdownStyle is the glamour style used by the read command.
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Load reads configuration from the default location and the environment.
// Env var overrides use prefix TERMHOME_.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(EnvConfig))
}

// LoadFrom reads configuration from path. An empty path searches
// ~/.config/termhome/config.toml; a missing file is not an error.
func LoadFrom(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	dataDir := filepath.Join(home, ".local", "share", "termhome")

	v := viper.New()

	v.SetDefault("content.dir", filepath.Join(dataDir, "content"))
	v.SetDefault("content.latest_posts", 5)
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", filepath.Join(dataDir, "state.db"))
	v.SetDefault("storage.poll_interval", "500ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir, "termhome.log"))
	v.SetDefault("feeds.timeout", "10s")
	v.SetDefault("feeds.xkcd", true)
	v.SetDefault("links.concurrency", 10)
	v.SetDefault("links.timeout", "10s")
	v.SetDefault("links.exclude_domains", []string{"github.com"})
	v.SetDefault("ui.stack_breakpoint", 90)
	v.SetDefault("ui.markdown_style", "dark")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "termhome"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TERMHOME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	c.Content.Dir = expandHome(c.Content.Dir, home)
	c.Storage.Path = expandHome(c.Storage.Path, home)
	c.Log.File = expandHome(c.Log.File, home)
	return c, nil
}

// Validate checks values that would otherwise fail much later.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverJSON, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}
	if c.Storage.PollInterval <= 0 {
		return fmt.Errorf("storage.poll_interval must be positive, got %s", c.Storage.PollInterval)
	}
	if c.Links.Concurrency < 1 {
		return fmt.Errorf("links.concurrency must be at least 1, got %d", c.Links.Concurrency)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, strings.TrimPrefix(path, "~/"))
	}
	return path
}
