package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "tab", "space")
	Desc string // Short description (e.g., "next", "collapse")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "tab:next space:collapse"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// bindingHints converts key bindings to hints using their help text.
func bindingHints(bindings ...key.Binding) []Hint {
	hints := make([]Hint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, Hint{Key: h.Key, Desc: h.Desc})
	}
	return hints
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Focus and scroll hints
	Action []Hint // Section and widget actions
	Header []Hint // Ticker toggles
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Header + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Header)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Header...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current state.
func (a App) getContextualHints() HintSet {
	switch {
	case a.showHelp:
		return HintSet{
			System: []Hint{{Key: "any key", Desc: "close"}},
		}
	case a.engine.Session().Active():
		return a.getDragHints()
	case a.widget.Editing:
		return a.getCardInputHints()
	default:
		return a.getNormalHints()
	}
}

// getNormalHints returns hints for browsing the homepage.
func (a App) getNormalHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "tab", Desc: "next"},
			{Key: "C-d/C-u", Desc: "scroll"},
		},
		Action: []Hint{
			{Key: "space", Desc: "collapse"},
			{Key: "y", Desc: "yank"},
			{Key: "r", Desc: "regen"},
			{Key: "s", Desc: "api"},
		},
		Header: []Hint{
			{Key: "1/2/3", Desc: "tickers"},
		},
		System: []Hint{
			{Key: "R", Desc: "reset"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// getDragHints returns hints while a section is being moved.
func (a App) getDragHints() HintSet {
	return HintSet{
		Action: []Hint{
			{Key: "release", Desc: "drop"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}

// getCardInputHints returns hints while typing a card name.
func (a App) getCardInputHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "card name"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "search"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}
