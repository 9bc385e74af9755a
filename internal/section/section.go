// Package section turns homepage section IDs into displayable content.
package section

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/nikbrunner/termhome/internal/content"
	"github.com/nikbrunner/termhome/internal/feeds"
	"github.com/nikbrunner/termhome/internal/homepage"
)

// Section is the resolved content of one homepage block.
type Section struct {
	ID    homepage.SectionID
	Title string
	Icon  string
	Body  string
	// Link is the URL the section points at, if any.
	Link string
}

// Widget is the API widget's current state, owned by the host.
type Widget struct {
	Source  feeds.Source
	Text    string
	Loading bool
	Err     string
	Query   string // card name being typed
}

// Dispatcher resolves section IDs against loaded content.
type Dispatcher struct {
	Site        content.Site
	Widget      Widget
	LatestPosts int
	Started     time.Time
	Now         func() time.Time
}

// Available returns the catalogue sections that have content to show.
func Available(site content.Site) []homepage.SectionID {
	ids := make([]homepage.SectionID, 0, len(homepage.Catalogue))
	for _, id := range homepage.Catalogue {
		if id == homepage.XKCD && site.Comic == nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Resolve returns the section for id, or nil when id is unknown or its
// backing data is missing.
func (d Dispatcher) Resolve(id homepage.SectionID) *Section {
	switch id {
	case homepage.LatestLogs:
		return d.latestLogs()
	case homepage.SystemStatus:
		return d.systemStatus()
	case homepage.QuickAccess:
		return d.quickAccess()
	case homepage.APIWidget:
		return d.apiWidget()
	case homepage.XKCD:
		return d.xkcd()
	default:
		return nil
	}
}

func (d Dispatcher) latestLogs() *Section {
	n := d.LatestPosts
	if n <= 0 {
		n = 5
	}
	posts := d.Site.LatestPosts(n)

	var b strings.Builder
	if len(posts) == 0 {
		b.WriteString("No posts yet.")
	}
	for i, p := range posts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s", p.Category, p.Date.Format("2006-01-02"), p.Title)
		if p.Excerpt != "" {
			fmt.Fprintf(&b, "\n%s", p.Excerpt)
		}
	}

	s := &Section{ID: homepage.LatestLogs, Title: "LATEST_LOGS", Icon: "#", Body: b.String()}
	if len(posts) > 0 {
		s.Link = "blog/" + posts[0].ID
	}
	return s
}

func (d Dispatcher) systemStatus() *Section {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	uptime := time.Duration(0)
	if !d.Started.IsZero() {
		uptime = now().Sub(d.Started).Truncate(time.Second)
	}

	var b strings.Builder
	b.WriteString("guest@termhome:~$ Welcome to my digital garden.\n")
	b.WriteString("This interface is designed for high-efficiency knowledge retrieval.\n\n")
	rows := [][2]string{
		{"UPTIME", uptime.String()},
		{"RUNTIME", runtime.Version()},
		{"PLATFORM", runtime.GOOS + "/" + runtime.GOARCH},
		{"POSTS", fmt.Sprint(len(d.Site.Posts))},
		{"RESOURCES", fmt.Sprint(len(d.Site.Resources))},
	}
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-10s %s", r[0]+":", r[1])
	}

	return &Section{ID: homepage.SystemStatus, Title: "SYSTEM_STATUS", Icon: ">", Body: b.String()}
}

func (d Dispatcher) quickAccess() *Section {
	resources := d.Site.QuickAccess()

	var b strings.Builder
	if len(resources) == 0 {
		b.WriteString("Nothing pinned. Mark a resource with quick-access: yes.")
	}
	for i, r := range resources {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s", r.Type.Icon(), r.Title)
	}

	s := &Section{ID: homepage.QuickAccess, Title: "QUICK_ACCESS", Icon: "@", Body: b.String()}
	if len(resources) > 0 {
		s.Link = resources[0].Link
	}
	return s
}

func (d Dispatcher) apiWidget() *Section {
	w := d.Widget
	if w.Source == "" {
		w.Source = feeds.MTG
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT_API: < %s >\n", w.Source.Label())
	if w.Source == feeds.MTG {
		fmt.Fprintf(&b, "CARD_NAME: %s\n", w.Query)
	}
	b.WriteString("\n")

	switch {
	case w.Loading && w.Source == feeds.MTG:
		b.WriteString("SEARCHING...")
	case w.Loading:
		b.WriteString("GENERATING...")
	case w.Err != "":
		b.WriteString("ERROR: " + w.Err)
	case w.Text != "":
		b.WriteString(strings.TrimRight(w.Text, "\n"))
	case w.Source == feeds.MTG:
		b.WriteString("Enter a card name to search")
	default:
		b.WriteString("Select an API to generate content")
	}

	return &Section{ID: homepage.APIWidget, Title: "API_WIDGET", Icon: "*", Body: b.String()}
}

func (d Dispatcher) xkcd() *Section {
	c := d.Site.Comic
	if c == nil {
		return nil
	}
	body := fmt.Sprintf("#%d: %s\n%s\n\n%s\nexplainxkcd → %s", c.Num, c.Title, c.Alt, c.Img, c.ExplainURL())
	return &Section{ID: homepage.XKCD, Title: "XKCD", Icon: "~", Body: body, Link: c.URL()}
}
