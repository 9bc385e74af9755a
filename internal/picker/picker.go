// Package picker is a small full-screen list for choosing one search hit.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/termhome/internal/content"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A8A00", Dark: "#4AF626"}).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().Underline(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A8A00", Dark: "#4AF626"}).
			Bold(true).
			MarginBottom(1)
)

// Item is one pickable search hit with a line of context.
type Item struct {
	Result content.SearchResult
	Detail string // date and category for posts, link for resources
}

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	items     []Item
	query     string
	cursor    int
	offset    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(items []Item, query string) Picker {
	return Picker{
		items:  items,
		query:  query,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.keepCursorVisible()
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.cancelled = true
			return p, tea.Quit
		case "enter":
			p.selected = true
			return p, tea.Quit
		case "down", "j", "ctrl+n":
			p.move(1)
		case "up", "k", "ctrl+p":
			p.move(-1)
		case "g", "home":
			p.move(-len(p.items))
		case "G", "end":
			p.move(len(p.items))
		}
	}

	return p, nil
}

func (p *Picker) move(delta int) {
	p.cursor = max(0, min(p.cursor+delta, len(p.items)-1))
	p.keepCursorVisible()
}

// visibleItems is how many two-line entries fit under the header and
// above the footer.
func (p Picker) visibleItems() int {
	return max((p.height-4)/2, 1)
}

func (p *Picker) keepCursorVisible() {
	n := p.visibleItems()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+n {
		p.offset = p.cursor - n + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.items))))
	b.WriteString("\n\n")

	end := min(p.offset+p.visibleItems(), len(p.items))
	for i := p.offset; i < end; i++ {
		item := p.items[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := highlight(item.Result.Title, item.Result.MatchedIndexes, style)
		fmt.Fprintf(&b, "%s%s %s\n", cursor, kindLabel(item.Result.Kind), title)
		fmt.Fprintf(&b, "   %s\n", detailStyle.Render(item.Detail))
	}

	b.WriteString("\n")
	b.WriteString(detailStyle.Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

func kindLabel(k content.Kind) string {
	if k == content.KindPost {
		return "#"
	}
	return "@"
}

// highlight underlines the fuzzy-matched runes of s.
func highlight(s string, matched []int, style lipgloss.Style) string {
	if len(matched) == 0 {
		return style.Render(s)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(style.Inherit(matchStyle).Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// Selected returns the chosen item, or false if the picker was cancelled.
func (p Picker) Selected() (Item, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.items) {
		return Item{}, false
	}
	return p.items[p.cursor], true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
