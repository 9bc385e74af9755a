package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	NextSection  key.Binding
	PrevSection  key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Collapse     key.Binding
	Yank         key.Binding
	Regenerate   key.Binding
	CycleSource  key.Binding
	CardSearch   key.Binding
	ResetLayout  key.Binding
	ToggleNews   key.Binding
	ToggleStocks key.Binding
	ToggleRadio  key.Binding
	NextStation  key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextSection: key.NewBinding(
			key.WithKeys("tab", "j"),
			key.WithHelp("tab/j", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab", "k"),
			key.WithHelp("S-tab/k", "previous section"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "scroll down"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "collapse"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank link"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "regenerate"),
		),
		CycleSource: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle API"),
		),
		CardSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "card search"),
		),
		ResetLayout: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset layout"),
		),
		ToggleNews: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "news ticker"),
		),
		ToggleStocks: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "stock ticker"),
		),
		ToggleRadio: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "radio"),
		),
		NextStation: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next station"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
