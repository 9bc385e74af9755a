package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/termhome/internal/homepage"
	"github.com/nikbrunner/termhome/internal/prefs"
	"github.com/nikbrunner/termhome/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// renderView creates the complete homepage view.
func (a App) renderView() string {
	if a.showHelp {
		return a.renderHelpOverlay()
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			a.renderBody(),
			a.renderStatusLine(),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// innerWidth is the terminal width minus app padding.
func (a App) innerWidth() int {
	return max(a.width-2*a.layoutConfig.Columns.PaddingX, 1)
}

// bodyTop is the terminal row of the first visible body row.
func (a App) bodyTop() int {
	return a.styles.App.GetPaddingTop() + lipgloss.Height(a.renderHeader())
}

// viewportHeight is the number of body rows on screen.
func (a App) viewportHeight() int {
	return layout.CalculateViewportHeight(a.height, lipgloss.Height(a.renderHeader()), a.layoutConfig.Columns)
}

// renderHeader renders the title bar and every ticker that is not minimized.
func (a App) renderHeader() string {
	width := a.innerWidth()

	title := a.styles.Title.Render("TERMHOME") + a.styles.Header.Render(" :: ~/digital-garden")

	var toggles []string
	for i, c := range prefs.Components {
		style := a.styles.TickerLabel
		if a.minimized[c] {
			style = a.styles.Empty
		}
		toggles = append(toggles, style.Render(fmt.Sprintf("[%d]%s", i+1, tickerName(c))))
	}
	right := strings.Join(toggles, " ")

	gap := width - layout.VisibleLength(title) - layout.VisibleLength(right)
	lines := []string{title + strings.Repeat(" ", max(gap, 1)) + right}

	for _, c := range prefs.Components {
		if a.minimized[c] {
			continue
		}
		lines = append(lines, a.renderTicker(c, width))
	}
	return strings.Join(lines, "\n")
}

// renderTicker renders one header ticker line.
func (a App) renderTicker(c prefs.Component, width int) string {
	label := layout.PadRight(tickerName(c), 7) + "▸ "
	room := width - layout.VisibleLength(label)

	var text string
	switch c {
	case prefs.NewsTicker:
		text = layout.Marquee(a.newsText(), room, a.ticker.Offset, a.layoutConfig.Ticker)
	case prefs.StockTicker:
		text = layout.Marquee(strings.Join(stockSymbols, "  "), room, a.ticker.Offset, a.layoutConfig.Ticker)
	case prefs.Radio:
		text, _ = layout.TruncateText(a.ticker.StationName()+"  [n] next station", room, a.layoutConfig.Text)
	}

	return a.styles.TickerLabel.Render(label) + a.styles.Ticker.Render(text)
}

// newsText joins the latest post titles for the news marquee.
func (a App) newsText() string {
	posts := a.site.LatestPosts(10)
	if len(posts) == 0 {
		return "NO TRANSMISSIONS"
	}
	titles := make([]string, len(posts))
	for i, p := range posts {
		titles[i] = strings.ToUpper(p.Title)
	}
	return strings.Join(titles, a.layoutConfig.Ticker.Separator)
}

func tickerName(c prefs.Component) string {
	switch c {
	case prefs.NewsTicker:
		return "NEWS"
	case prefs.StockTicker:
		return "STOCKS"
	case prefs.Radio:
		return "RADIO"
	default:
		return strings.ToUpper(string(c))
	}
}

// renderBody renders the visible window of the columns, padded to the
// viewport height so the help bar stays at the bottom.
func (a App) renderBody() string {
	height := a.viewportHeight()
	lines := a.arr.lines

	start := min(a.scroll, len(lines))
	end := min(start+height, len(lines))
	visible := make([]string, 0, height)
	visible = append(visible, lines[start:end]...)
	for len(visible) < height {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}

// renderStatusLine shows the drag in progress, a pending fetch, or the
// last status message.
func (a App) renderStatusLine() string {
	var line string

	switch s := a.engine.Session(); {
	case s.Active():
		line = a.styles.Status.Render("MOVING " + a.sectionTitle(s.DraggingID) + " → " + a.dropTarget(s))
	case a.widget.Loading:
		line = a.widget.Spinner.View() + a.styles.Status.Render(" fetching "+a.widget.Source.Label())
	case a.status != "" && a.statusErr:
		line = a.styles.Error.Render("✗ " + a.status)
	case a.status != "":
		line = a.styles.Status.Render(a.status)
	}

	line, _ = layout.TruncateText(line, a.innerWidth(), a.layoutConfig.Text)
	return line
}

// dropTarget describes where releasing now would put the dragged section.
func (a App) dropTarget(s homepage.DragSession) string {
	switch {
	case s.DragOverID != "":
		return "before " + a.sectionTitle(s.DragOverID)
	case s.DragOverColumn != homepage.None:
		return strings.ToUpper(s.DragOverColumn.String()) + " column"
	default:
		return "nowhere"
	}
}

func (a App) sectionTitle(id homepage.SectionID) string {
	if sec := a.dispatcher().Resolve(id); sec != nil {
		return sec.Title
	}
	return string(id)
}

func (a App) renderHelpBar() string {
	hints, _ := layout.TruncateText(a.renderHints(a.getContextualHints()), a.innerWidth(), a.layoutConfig.Text)
	return a.styles.Help.Render(hints)
}

// renderHelpOverlay renders every key binding in a centered box.
func (a App) renderHelpOverlay() string {
	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	keyWidth := a.layoutConfig.Modal.HelpKeyColumnWidth

	bindings := []struct {
		group string
		keys  []Hint
	}{
		{"sections", bindingHints(a.keys.NextSection, a.keys.PrevSection, a.keys.Collapse, a.keys.Yank, a.keys.ScrollDown, a.keys.ScrollUp)},
		{"api widget", bindingHints(a.keys.Regenerate, a.keys.CycleSource, a.keys.CardSearch)},
		{"header", bindingHints(a.keys.ToggleNews, a.keys.ToggleStocks, a.keys.ToggleRadio, a.keys.NextStation)},
		{"layout", append(
			[]Hint{{Key: "drag ⋮⋮", Desc: "move section"}, {Key: "click [-]", Desc: "collapse"}},
			bindingHints(a.keys.ResetLayout)...,
		)},
		{"system", bindingHints(a.keys.Help, a.keys.Quit)},
	}

	var b strings.Builder
	for i, g := range bindings {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.styles.Title.Render(g.group) + "\n")
		for _, h := range g.keys {
			b.WriteString(a.styles.HintKey.Render(layout.PadRight(h.Key, keyWidth)) + h.Desc + "\n")
		}
	}

	modal := a.styles.Modal.Width(width).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}
