package tui

import (
	"log/slog"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/termhome/internal/broadcast"
	"github.com/nikbrunner/termhome/internal/content"
	"github.com/nikbrunner/termhome/internal/feeds"
	"github.com/nikbrunner/termhome/internal/homepage"
	"github.com/nikbrunner/termhome/internal/kv"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/prefs"
	"github.com/nikbrunner/termhome/internal/section"
	"github.com/nikbrunner/termhome/internal/tui/layout"
)

// App is the main bubbletea model for the homepage.
type App struct {
	engine   *homepage.Engine
	registry *prefs.Registry
	collapse *prefs.CollapseStore
	feeds    *feeds.Client
	log      *slog.Logger

	site        content.Site
	latestPosts int
	started     time.Time
	now         func() time.Time
	copy        func(string) error

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	focus     homepage.SectionID
	collapsed map[homepage.SectionID]bool
	minimized map[prefs.Component]bool
	widget    WidgetState
	ticker    TickerState
	showHelp  bool

	// Status line message
	status    string
	statusErr bool

	// Body geometry from the last render pass
	arr    arrangement
	scroll int

	visibility  chan visibilityMsg
	unsubscribe []func()

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Engine   *homepage.Engine     // optional, in-memory if nil
	Registry *prefs.Registry      // optional, in-memory if nil
	Collapse *prefs.CollapseStore // optional, in-memory if nil
	Feeds    *feeds.Client        // optional, default endpoints if nil

	Site        content.Site
	Available   []homepage.SectionID // optional, derived from Site if nil
	LatestPosts int
	Started     time.Time          // optional, now if zero
	Now         func() time.Time   // optional, time.Now if nil
	Clipboard   func(string) error // optional, system clipboard if nil
	Logger      *slog.Logger       // optional

	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters. It initializes the
// engine's layout from storage and reads the stored collapse and
// visibility state.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	log := params.Logger
	if log == nil {
		log = logging.New("tui")
	}

	engine := params.Engine
	if engine == nil {
		engine = homepage.New(kv.NewMemoryStore(), log)
	}
	registry := params.Registry
	if registry == nil {
		registry = prefs.NewRegistry(kv.NewMemoryStore(), broadcast.New(), log)
	}
	collapse := params.Collapse
	if collapse == nil {
		collapse = prefs.NewCollapseStore(kv.NewMemoryStore(), log)
	}
	client := params.Feeds
	if client == nil {
		client = feeds.NewClient(feeds.Options{Logger: log})
	}

	available := params.Available
	if available == nil {
		available = section.Available(params.Site)
	}

	started := params.Started
	if started.IsZero() {
		started = time.Now()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	app := App{
		engine:       engine,
		registry:     registry,
		collapse:     collapse,
		feeds:        client,
		log:          log,
		site:         params.Site,
		latestPosts:  params.LatestPosts,
		started:      started,
		now:          now,
		copy:         copyFn,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		collapsed:    make(map[homepage.SectionID]bool),
		minimized:    make(map[prefs.Component]bool),
		widget:       NewWidgetState(layoutCfg),
		visibility:   make(chan visibilityMsg, 16),
		width:        80,
		height:       24,
	}

	lay := engine.Initialize(available)
	for _, id := range lay.IDs() {
		app.collapsed[id] = collapse.Read(string(id), false)
	}
	if ids := lay.IDs(); len(ids) > 0 {
		app.focus = ids[0]
	}

	for _, c := range prefs.Components {
		app.minimized[c] = registry.Read(c)
		ch := app.visibility
		cancel := registry.Subscribe(c, func(bool) {
			select {
			case ch <- visibilityMsg{component: c}:
			default:
				log.Debug("visibility update dropped", "component", c)
			}
		})
		app.unsubscribe = append(app.unsubscribe, cancel)
	}

	app.relayout()
	return app
}

// Close releases the App's visibility subscriptions.
func (a App) Close() {
	for _, cancel := range a.unsubscribe {
		cancel()
	}
}

// WithDimensions returns a copy of the App laid out for the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.relayout()
	return a
}

// Focus returns the keyboard-focused section.
func (a App) Focus() homepage.SectionID {
	return a.focus
}

// Layout returns the current section arrangement.
func (a App) Layout() homepage.Layout {
	return a.engine.Layout()
}

// Collapsed reports whether a section is collapsed.
func (a App) Collapsed(id homepage.SectionID) bool {
	return a.collapsed[id]
}

// Minimized reports whether a header component is hidden.
func (a App) Minimized(c prefs.Component) bool {
	return a.minimized[c]
}

// Widget returns the API widget state.
func (a App) Widget() WidgetState {
	return a.widget
}

// Status returns the status line message.
func (a App) Status() string {
	return a.status
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(tick(), waitForVisibility(a.visibility))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a, cmd := a.update(msg)
	a.relayout()
	return a, cmd
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.ticker.Advance()
		return a, tick()

	case visibilityMsg:
		// Re-read rather than trusting whoever sent the change.
		a.minimized[msg.component] = a.registry.Read(msg.component)
		return a, waitForVisibility(a.visibility)

	case widgetMsg:
		if a.widget.Finish(msg.seq, msg.text, msg.err) && msg.err != nil {
			a.log.Warn("api widget fetch failed", "source", a.widget.Source, "error", msg.err)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.widget.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.widget.Spinner, cmd = a.widget.Spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if a.widget.Editing {
		return a.handleCardInput(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel):
		if a.engine.Session().Active() {
			a.cancelDrag()
		}

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.NextSection):
		a.moveFocus(1)

	case key.Matches(msg, a.keys.PrevSection):
		a.moveFocus(-1)

	case key.Matches(msg, a.keys.ScrollUp):
		a.scrollBy(-a.viewportHeight() / 2)

	case key.Matches(msg, a.keys.ScrollDown):
		a.scrollBy(a.viewportHeight() / 2)

	case key.Matches(msg, a.keys.Collapse):
		a.toggleCollapse(a.focus)

	case key.Matches(msg, a.keys.Yank):
		a.yank()

	case key.Matches(msg, a.keys.Regenerate):
		return a.regenerate()

	case key.Matches(msg, a.keys.CycleSource):
		a.widget.Cycle()
		if a.widget.Source != feeds.MTG {
			return a.regenerate()
		}

	case key.Matches(msg, a.keys.CardSearch):
		if a.widget.Source == feeds.MTG {
			a.widget.StartEditing()
			return a, textinput.Blink
		}

	case key.Matches(msg, a.keys.ResetLayout):
		a.engine.Reset()
		a.scroll = 0
		a.setStatus("Layout reset")

	case key.Matches(msg, a.keys.ToggleNews):
		a.toggleComponent(prefs.NewsTicker)

	case key.Matches(msg, a.keys.ToggleStocks):
		a.toggleComponent(prefs.StockTicker)

	case key.Matches(msg, a.keys.ToggleRadio):
		a.toggleComponent(prefs.Radio)

	case key.Matches(msg, a.keys.NextStation):
		a.ticker.NextStation()
	}

	return a, nil
}

// handleCardInput routes keys to the card name input.
func (a App) handleCardInput(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.widget.StopEditing()
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		a.widget.StopEditing()
		return a.regenerate()
	}

	var cmd tea.Cmd
	a.widget.Input, cmd = a.widget.Input.Update(msg)
	return a, cmd
}

// regenerate fetches new content for the API widget's current source.
func (a App) regenerate() (App, tea.Cmd) {
	if a.widget.Source == feeds.MTG {
		name := a.widget.Query()
		if name == "" {
			a.widget.StartEditing()
			return a, textinput.Blink
		}
		seq := a.widget.Begin()
		return a, tea.Batch(fetchCard(a.feeds, name, seq), a.widget.Spinner.Tick)
	}

	seq := a.widget.Begin()
	return a, tea.Batch(fetchFact(a.feeds, a.widget.Source, seq), a.widget.Spinner.Tick)
}

// moveFocus moves keyboard focus through sections in layout order, left
// column first, wrapping at either end.
func (a *App) moveFocus(delta int) {
	ids := a.engine.Layout().IDs()
	if len(ids) == 0 {
		return
	}

	next := 0
	if idx := slices.Index(ids, a.focus); idx >= 0 {
		next = (idx + delta + len(ids)) % len(ids)
	}
	a.focus = ids[next]

	if p, ok := a.arr.find(a.focus); ok {
		a.scroll = layout.ScrollToReveal(a.scroll, p.Bounds.Top, p.Bounds.Bottom, a.viewportHeight())
	}
}

func (a *App) scrollBy(delta int) {
	a.scroll = layout.ClampScroll(a.scroll+delta, a.arr.height(), a.viewportHeight())
}

// toggleCollapse flips a section's collapsed state and persists it. The
// in-memory state stays authoritative when the write fails.
func (a *App) toggleCollapse(id homepage.SectionID) {
	if id == "" {
		return
	}
	next := !a.collapsed[id]
	a.collapse.Write(string(id), next)
	a.collapsed[id] = next
}

func (a *App) toggleComponent(c prefs.Component) {
	a.minimized[c] = a.registry.Toggle(c)
	if a.minimized[c] {
		a.setStatus(componentLabel(c) + " minimized")
	} else {
		a.setStatus(componentLabel(c) + " restored")
	}
}

// yank copies the focused section's link to the clipboard.
func (a *App) yank() {
	sec := a.dispatcher().Resolve(a.focus)
	if sec == nil || sec.Link == "" {
		a.setStatus("Nothing to yank")
		return
	}
	if err := a.copy(sec.Link); err != nil {
		a.log.Warn("clipboard copy failed", "error", err)
		a.setError("Clipboard copy failed")
		return
	}
	a.setStatus("Copied " + sec.Link)
}

// cancelDrag ends the gesture without a drop target, which leaves the
// layout untouched.
func (a *App) cancelDrag() {
	a.engine.OnColumnDragLeave(homepage.Rect{}, -1, -1)
	a.engine.OnDragEnd()
	a.setStatus("Move cancelled")
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

// dispatcher resolves sections against the App's content and widget state.
func (a App) dispatcher() section.Dispatcher {
	return section.Dispatcher{
		Site:        a.site,
		Widget:      a.widget.Section(),
		LatestPosts: a.latestPosts,
		Started:     a.started,
		Now:         a.now,
	}
}

// relayout re-measures the body and hands the column geometry to the
// engine. It runs after every update.
func (a *App) relayout() {
	a.arr = a.arrange()
	a.engine.SetStacked(a.arr.columns.Stacked)
	a.engine.SetColumnBounds(a.arr.left, a.arr.right)
	a.scroll = layout.ClampScroll(a.scroll, a.arr.height(), a.viewportHeight())
}

func componentLabel(c prefs.Component) string {
	switch c {
	case prefs.NewsTicker:
		return "News ticker"
	case prefs.StockTicker:
		return "Stock ticker"
	case prefs.Radio:
		return "Radio"
	default:
		return string(c)
	}
}
