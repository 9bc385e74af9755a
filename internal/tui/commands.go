package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/termhome/internal/feeds"
	"github.com/nikbrunner/termhome/internal/prefs"
)

const tickInterval = 150 * time.Millisecond

// tickMsg advances the header tickers.
type tickMsg time.Time

// visibilityMsg reports that a header component's minimized state may have
// changed, in this instance or another one.
type visibilityMsg struct {
	component prefs.Component
}

// widgetMsg carries an API widget response.
type widgetMsg struct {
	seq  int
	text string
	err  error
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForVisibility delivers the next visibility change from ch.
func waitForVisibility(ch <-chan visibilityMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func fetchFact(client *feeds.Client, src feeds.Source, seq int) tea.Cmd {
	return func() tea.Msg {
		text, err := client.Fact(context.Background(), src)
		return widgetMsg{seq: seq, text: text, err: err}
	}
}

func fetchCard(client *feeds.Client, name string, seq int) tea.Cmd {
	return func() tea.Msg {
		card, err := client.Card(context.Background(), name)
		if err != nil {
			return widgetMsg{seq: seq, err: err}
		}
		return widgetMsg{seq: seq, text: feeds.FormatCard(*card)}
	}
}
