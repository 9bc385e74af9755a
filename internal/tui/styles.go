package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App             lipgloss.Style
	Header          lipgloss.Style // Title bar above the tickers
	Title           lipgloss.Style
	TickerLabel     lipgloss.Style // Fixed label before a ticker line
	Ticker          lipgloss.Style
	Section         lipgloss.Style // Box around an idle section
	SectionFocused  lipgloss.Style // Box around the keyboard-focused section
	SectionDragging lipgloss.Style // Box around the section being dragged
	SectionDragOver lipgloss.Style // Box around the current drop target
	Placeholder     lipgloss.Style // Box shown in an empty column
	Grip            lipgloss.Style
	SectionIcon     lipgloss.Style
	SectionTitle    lipgloss.Style
	Toggle          lipgloss.Style // [-] / [+] collapse control
	Body            lipgloss.Style
	Empty           lipgloss.Style
	Status          lipgloss.Style
	Error           lipgloss.Style
	Help            lipgloss.Style
	HintKey         lipgloss.Style // Key portion of hints (e.g., "tab", "space")
	HintDesc        lipgloss.Style // Description portion of hints (e.g., "collapse")
	Modal           lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Retro terminal: grayscale with a single phosphor green accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#4AF626"}  // phosphor green
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	danger := lipgloss.AdaptiveColor{Light: "#A33A3A", Dark: "#D75F5F"}

	box := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Header: lipgloss.NewStyle().
			Foreground(subtle),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		TickerLabel: lipgloss.NewStyle().
			Foreground(accent),

		Ticker: lipgloss.NewStyle().
			Foreground(primary),

		Section: box,

		SectionFocused: box.
			BorderForeground(accent),

		SectionDragging: box.
			Border(lipgloss.NormalBorder()).
			BorderForeground(subtle).
			Faint(true),

		SectionDragOver: box.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent),

		Placeholder: box.
			Border(lipgloss.NormalBorder()).
			BorderForeground(border),

		Grip: lipgloss.NewStyle().
			Foreground(subtle),

		SectionIcon: lipgloss.NewStyle().
			Foreground(accent),

		SectionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Toggle: lipgloss.NewStyle().
			Foreground(subtle),

		Body: lipgloss.NewStyle().
			Foreground(primary),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Status: lipgloss.NewStyle().
			Foreground(accent),

		Error: lipgloss.NewStyle().
			Foreground(danger),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingTop(1),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}
