package content

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	rendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle is avoided because its
	// background query can block on some terminals.
	renderers = map[string]*glamour.TermRenderer{}
)

// MarkdownStyles lists the accepted glamour styles.
var MarkdownStyles = []string{"dark", "light", "notty", "ascii", "dracula", "tokyo-night", "pink"}

// RenderPost renders a post's title block and markdown body for a terminal
// of the given width.
func RenderPost(p Post, style string, width int) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", p.Title)
	fmt.Fprintf(&md, "`%s` · %s", p.Date.Format("2006-01-02"), p.Category)
	if p.ReadTime != "" {
		fmt.Fprintf(&md, " · %s", p.ReadTime)
	}
	md.WriteString("\n\n")
	if len(p.Tags) > 0 {
		fmt.Fprintf(&md, "_%s_\n\n", strings.Join(p.Tags, ", "))
	}
	md.WriteString(p.Body)

	return RenderMarkdown(md.String(), style, width)
}

// RenderMarkdown renders md with the named glamour style.
func RenderMarkdown(md, style string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	r, err := renderer(style, width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func renderer(style string, width int) (*glamour.TermRenderer, error) {
	if style == "" {
		style = "dark"
	}
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	defer rendererMu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	renderers[key] = r
	return r, nil
}
