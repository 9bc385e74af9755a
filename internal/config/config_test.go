package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/termhome/internal/config"
	"gotest.tools/v3/assert"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	assert.NilError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := config.LoadFrom("")
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage.Driver, config.DriverSQLite)
	assert.Equal(t, cfg.Storage.Path, filepath.Join(home, ".local", "share", "termhome", "state.db"))
	assert.Equal(t, cfg.Storage.PollInterval, 500*time.Millisecond)
	assert.Equal(t, cfg.Content.LatestPosts, 5)
	assert.Equal(t, cfg.Feeds.Timeout, 10*time.Second)
	assert.Equal(t, cfg.Feeds.XKCD, true)
	assert.Equal(t, cfg.UI.StackBreakpoint, 90)
	assert.Equal(t, cfg.UI.MarkdownStyle, "dark")
	assert.Equal(t, cfg.Links.Concurrency, 10)
	assert.DeepEqual(t, cfg.Links.ExcludeDomains, []string{"github.com"})
}

func TestLoadFrom_File(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, `
[content]
dir = "~/site/content"
latest_posts = 3

[storage]
driver = "json"
path = "/tmp/termhome.json"
poll_interval = "2s"

[links]
concurrency = 4
exclude_domains = ["gitlab.com", "github.com"]

[ui]
stack_breakpoint = 120
markdown_style = "notty"
`)

	cfg, err := config.LoadFrom(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Content.Dir, filepath.Join(home, "site", "content"))
	assert.Equal(t, cfg.Content.LatestPosts, 3)
	assert.Equal(t, cfg.Storage.Driver, config.DriverJSON)
	assert.Equal(t, cfg.Storage.Path, "/tmp/termhome.json")
	assert.Equal(t, cfg.Storage.PollInterval, 2*time.Second)
	assert.Equal(t, cfg.UI.StackBreakpoint, 120)
	assert.Equal(t, cfg.UI.MarkdownStyle, "notty")
	assert.Equal(t, cfg.Links.Concurrency, 4)
	assert.DeepEqual(t, cfg.Links.ExcludeDomains, []string{"gitlab.com", "github.com"})
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TERMHOME_STORAGE_DRIVER", "memory")

	cfg, err := config.LoadFrom("")
	assert.NilError(t, err)
	assert.Equal(t, cfg.Storage.Driver, config.DriverMemory)
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "[storage]\ndriver = \"redis\"\n")

	_, err := config.LoadFrom(path)
	assert.ErrorIs(t, err, config.ErrUnknownDriver)
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "[storage\n")

	_, err := config.LoadFrom(path)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadFrom_BadConcurrency(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "[links]\nconcurrency = 0\n")

	_, err := config.LoadFrom(path)
	assert.ErrorContains(t, err, "links.concurrency")
}
