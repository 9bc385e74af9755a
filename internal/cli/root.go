// Package cli wires configuration, storage and content into the termhome
// commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/termhome/internal/broadcast"
	"github.com/nikbrunner/termhome/internal/config"
	"github.com/nikbrunner/termhome/internal/content"
	"github.com/nikbrunner/termhome/internal/feeds"
	"github.com/nikbrunner/termhome/internal/homepage"
	"github.com/nikbrunner/termhome/internal/kv"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/prefs"
	"github.com/nikbrunner/termhome/internal/tui"
	"github.com/nikbrunner/termhome/internal/tui/layout"
	"github.com/spf13/cobra"
)

// App carries state shared by every command.
type App struct {
	ConfigPath string

	cfg config.Config
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "termhome",
		Short:        "Terminal homepage for a markdown digital garden",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the homepage
  termhome

  # Find a post or resource
  termhome search golang

  # Bring back a minimized ticker
  termhome minimize news-ticker
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default ~/.config/termhome/config.toml)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		load := config.Load
		if app.ConfigPath != "" {
			load = func() (config.Config, error) { return config.LoadFrom(app.ConfigPath) }
		}
		cfg, err := load()
		if err != nil {
			return err
		}
		app.cfg = cfg

		logFile := cfg.Log.File
		if cmd != cmd.Root() {
			// Subcommands own the terminal; only the TUI needs a log file.
			logFile = ""
		}
		if err := logging.Setup(logging.Options{Level: cfg.Log.Level, File: logFile}); err != nil {
			return err
		}
		app.log = logging.New("cli")
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	}

	cmd.AddCommand(
		newSearchCmd(app),
		newReadCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newCheckLinksCmd(app),
		newLayoutCmd(app),
		newMinimizeCmd(app),
	)
	return cmd
}

// openStore opens the configured preference store.
func (a *App) openStore() (kv.Store, error) {
	store, err := kv.Open(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return store, nil
}

// loadSite reads the content tree. Invalid files are logged and skipped.
func (a *App) loadSite() (content.Site, error) {
	site, err := content.Load(a.cfg.Content.Dir)
	if err != nil {
		if site.Posts == nil && site.Resources == nil {
			return content.Site{}, fmt.Errorf("load content: %w", err)
		}
		a.log.Warn("skipped invalid content", "error", err)
	}
	return site, nil
}

func (a *App) feedsClient() *feeds.Client {
	return feeds.NewClient(feeds.Options{
		Timeout: a.cfg.Feeds.Timeout,
		Logger:  logging.New("feeds"),
	})
}

func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	site, err := app.loadSite()
	if err != nil {
		return err
	}

	client := app.feedsClient()
	if app.cfg.Feeds.XKCD {
		fetchCtx, done := context.WithTimeout(ctx, app.cfg.Feeds.Timeout)
		comic, err := client.LatestComic(fetchCtx)
		done()
		if err != nil {
			app.log.Warn("comic unavailable", "error", err)
		} else {
			site.Comic = comic
		}
	}

	registry := prefs.NewRegistry(store, broadcast.Default, logging.New("prefs"))
	if w, ok := store.(kv.Watcher); ok {
		go func() {
			if err := registry.Watch(ctx, w); err != nil && !errors.Is(err, context.Canceled) {
				app.log.Warn("visibility watch stopped", "error", err)
			}
		}()
	}

	layoutCfg := layout.DefaultConfig()
	layoutCfg.Columns.StackBreakpoint = app.cfg.UI.StackBreakpoint

	model := tui.NewApp(tui.AppParams{
		Engine:       homepage.New(store, logging.New("homepage")),
		Registry:     registry,
		Collapse:     prefs.NewCollapseStore(store, logging.New("prefs")),
		Feeds:        client,
		Site:         site,
		LatestPosts:  app.cfg.Content.LatestPosts,
		Started:      time.Now(),
		Logger:       logging.New("tui"),
		LayoutConfig: &layoutCfg,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// layoutEngine initializes a layout engine over the whole catalogue. The
// comic is not fetched outside the TUI, so the site cannot say whether
// the xkcd section is available.
func layoutEngine(store kv.Store) *homepage.Engine {
	engine := homepage.New(store, logging.New("homepage"))
	engine.Initialize(homepage.Catalogue)
	return engine
}
