package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/termhome/internal/feeds"
	"github.com/nikbrunner/termhome/internal/section"
	"github.com/nikbrunner/termhome/internal/tui/layout"
)

// WidgetState holds state for the API widget section.
type WidgetState struct {
	Source  feeds.Source
	Text    string // last fetched fact or formatted card
	Err     string
	Loading bool
	Editing bool            // card name input has focus
	Input   textinput.Model // card name input
	Spinner spinner.Model

	// seq identifies the newest request; older responses are dropped.
	seq int
}

// NewWidgetState creates a new WidgetState with initialized input.
func NewWidgetState(cfg layout.LayoutConfig) WidgetState {
	input := textinput.New()
	input.Placeholder = "Black Lotus"
	input.Prompt = ""
	input.CharLimit = cfg.Input.CardCharLimit
	input.Width = cfg.Input.CardWidth

	s := spinner.New()
	s.Spinner = spinner.Dot

	return WidgetState{
		Source:  feeds.MTG,
		Input:   input,
		Spinner: s,
	}
}

// Section returns the dispatcher's view of the widget.
func (w WidgetState) Section() section.Widget {
	query := w.Input.Value()
	if w.Editing {
		query = w.Input.View()
	}
	return section.Widget{
		Source:  w.Source,
		Text:    w.Text,
		Loading: w.Loading,
		Err:     w.Err,
		Query:   query,
	}
}

// Query returns the trimmed card name.
func (w WidgetState) Query() string {
	return strings.TrimSpace(w.Input.Value())
}

// Begin marks a new request in flight and returns its sequence number.
func (w *WidgetState) Begin() int {
	w.seq++
	w.Loading = true
	w.Err = ""
	return w.seq
}

// Finish records a response. Responses for superseded requests are ignored
// and reported as false.
func (w *WidgetState) Finish(seq int, text string, err error) bool {
	if seq != w.seq {
		return false
	}
	w.Loading = false
	if err != nil {
		w.Err = describeFetchError(err)
		w.Text = ""
		return true
	}
	w.Err = ""
	w.Text = text
	return true
}

func describeFetchError(err error) string {
	switch {
	case errors.Is(err, feeds.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, feeds.ErrEmptyCardName):
		return "Enter a card name"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	default:
		return "Failed to fetch data"
	}
}

// Cycle switches to the next source and clears the previous result.
func (w *WidgetState) Cycle() {
	w.Source = w.Source.Next()
	w.seq++ // drop anything in flight for the old source
	w.Loading = false
	w.Text = ""
	w.Err = ""
	w.Editing = false
	w.Input.Blur()
}

// StartEditing focuses the card name input.
func (w *WidgetState) StartEditing() {
	w.Editing = true
	w.Input.Focus()
}

// StopEditing blurs the card name input, keeping its value.
func (w *WidgetState) StopEditing() {
	w.Editing = false
	w.Input.Blur()
}

// stockSymbols is the stock ticker strip.
var stockSymbols = []string{
	"^GSPC", "^DJI", "^IXIC", "^VIX", "^RUT",
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK.B",
	"SPY", "QQQ", "DIA", "IWM", "VTI", "GLD", "TLT",
}

// radioStations are the stations listed by the radio line.
var radioStations = []string{
	"Electro House",
	"BBC World Service",
	"Radio Stream",
	"Radio Paradise Rock",
	"Hits1 HD",
}

// TickerState holds the header ticker animation state.
type TickerState struct {
	Offset  int // marquee scroll position
	Station int // index into radioStations
}

// Advance moves the marquee one cell.
func (t *TickerState) Advance() {
	t.Offset++
}

// NextStation selects the next radio station.
func (t *TickerState) NextStation() {
	t.Station = (t.Station + 1) % len(radioStations)
}

// StationName returns the selected station.
func (t TickerState) StationName() string {
	return radioStations[t.Station%len(radioStations)]
}
