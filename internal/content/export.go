package content

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DefaultExportPath returns ~/Downloads/termhome-resources-YYYY-MM-DD.html.
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("termhome-resources-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML writes the site's linked resources as a Netscape bookmark file
// with one folder per topic. Resources without a link are left out.
func ExportHTML(site Site) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	byTopic := make(map[string][]Resource)
	for _, r := range site.Resources {
		if r.Link == "" {
			continue
		}
		byTopic[r.Topic] = append(byTopic[r.Topic], r)
	}
	topics := make([]string, 0, len(byTopic))
	for t := range byTopic {
		topics = append(topics, t)
	}
	slices.Sort(topics)

	const prefix = "    "
	for _, topic := range topics {
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(topic))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		for _, r := range byTopic[topic] {
			fmt.Fprintf(&b,
				"%s%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
				prefix, prefix,
				html.EscapeString(r.Link),
				r.Date.Unix(),
				html.EscapeString(r.Title),
			)
		}
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}
