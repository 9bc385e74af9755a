package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells s occupies.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Styled text keeps its escape codes.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text + ellipsis
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// PadRight pads s with spaces to exactly width cells. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Marquee returns a width-cell window onto text repeated endlessly,
// starting offset runes in. Entries are joined with the ticker separator.
// Text is expected to be unstyled and single-width.
func Marquee(text string, width, offset int, cfg TickerConfig) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}

	loop := []rune(text + cfg.Separator)
	start := offset % len(loop)
	if start < 0 {
		start += len(loop)
	}

	var b strings.Builder
	for i := range width {
		b.WriteRune(loop[(start+i)%len(loop)])
	}
	return b.String()
}
