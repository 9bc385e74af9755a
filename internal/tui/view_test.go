package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/termhome/internal/tui"
	"github.com/nikbrunner/termhome/internal/tui/layout"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// createTestApp creates a test app with fixed dimensions.
func createTestApp(env *testEnv, width, height int) tui.App {
	cfg := layout.DefaultConfig()
	params := env.params()
	params.LayoutConfig = &cfg

	app := tui.NewApp(params)
	return app.WithDimensions(width, height)
}

func plain(app tui.App) string {
	return layout.StripANSI(app.View())
}

// lineOf returns the index of the first line containing s, or -1.
func lineOf(view, s string) int {
	for i, line := range strings.Split(view, "\n") {
		if strings.Contains(line, s) {
			return i
		}
	}
	return -1
}

func TestView_TwoColumns(t *testing.T) {
	view := plain(createTestApp(newEnv(), 120, 40))

	assert.Check(t, is.Contains(view, "TERMHOME"))
	assert.Check(t, is.Contains(view, "[1]NEWS"))
	assert.Check(t, is.Contains(view, "HELLO WORLD"))
	assert.Check(t, is.Contains(view, "Hello World"))
	assert.Check(t, is.Contains(view, "[-]"))

	logs := lineOf(view, "LATEST_LOGS")
	assert.Assert(t, logs >= 0)
	assert.Equal(t, lineOf(view, "API_WIDGET"), logs, "column heads should share a row")

	lines := strings.Split(view, "\n")
	assert.Equal(t, len(lines), 40)
	for i, line := range lines {
		if w := layout.VisibleLength(line); w > 120 {
			t.Errorf("line %d is %d cells wide, expected at most 120", i, w)
		}
	}
}

func TestView_SectionHeadersShowIcons(t *testing.T) {
	view := plain(createTestApp(newEnv(), 120, 100))

	for _, head := range []string{"⋮⋮ # LATEST_LOGS", "⋮⋮ > SYSTEM_STATUS", "⋮⋮ @ QUICK_ACCESS", "⋮⋮ * API_WIDGET", "⋮⋮ ~ XKCD"} {
		assert.Check(t, is.Contains(view, head))
	}
}

func TestView_StackedBelowBreakpoint(t *testing.T) {
	app := createTestApp(newEnv(), 80, 100)
	view := plain(app)

	quick := lineOf(view, "QUICK_ACCESS")
	api := lineOf(view, "API_WIDGET")
	assert.Assert(t, quick >= 0)
	assert.Assert(t, api > quick, "right column should follow the left column")
}

func TestView_ResizeSwitchesMode(t *testing.T) {
	app := createTestApp(newEnv(), 80, 100)

	updated, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 100})
	view := plain(updated.(tui.App))
	assert.Equal(t, lineOf(view, "API_WIDGET"), lineOf(view, "LATEST_LOGS"))
}

func TestView_CollapsedSectionHidesBody(t *testing.T) {
	app := createTestApp(newEnv(), 120, 40)
	app = press(app, tea.KeyMsg{Type: tea.KeySpace})

	view := plain(app)
	assert.Check(t, is.Contains(view, "[+]"))
	assert.Check(t, !strings.Contains(view, "First post."), "collapsed body should not render")
	assert.Check(t, is.Contains(view, "LATEST_LOGS"))
}

func TestView_MinimizedTicker(t *testing.T) {
	app := createTestApp(newEnv(), 120, 40)
	assert.Check(t, is.Contains(plain(app), "NEWS   ▸"))

	app = press(app, runes("1"))
	view := plain(app)
	assert.Check(t, !strings.Contains(view, "NEWS   ▸"))
	assert.Check(t, is.Contains(view, "[1]NEWS"), "toggle stays in the title bar")
	assert.Check(t, is.Contains(view, "STOCKS ▸"))
}

func TestView_NoComic(t *testing.T) {
	env := newEnv()
	params := env.params()
	params.Site.Comic = nil
	app := tui.NewApp(params).WithDimensions(120, 40)

	assert.Check(t, !strings.Contains(plain(app), "XKCD"))
}

func TestView_HelpOverlay(t *testing.T) {
	app := createTestApp(newEnv(), 120, 40)
	app = press(app, runes("?"))

	view := plain(app)
	assert.Check(t, is.Contains(view, "api widget"))
	assert.Check(t, is.Contains(view, "move section"))
	assert.Check(t, !strings.Contains(view, "LATEST_LOGS"))
}

func TestView_StatusLine(t *testing.T) {
	app := createTestApp(newEnv(), 120, 40)
	app = press(app, runes("R"))

	assert.Check(t, is.Contains(plain(app), "Layout reset"))
}
