package section_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/termhome/internal/content"
	"github.com/nikbrunner/termhome/internal/feeds"
	"github.com/nikbrunner/termhome/internal/homepage"
	"github.com/nikbrunner/termhome/internal/section"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func testSite() content.Site {
	return content.Site{
		Posts: []content.Post{
			{ID: "newest", Title: "Newest", Category: "Go", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Excerpt: "fresh"},
			{ID: "older", Title: "Older", Category: "Notes", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		},
		Resources: []content.Resource{
			{ID: "zed", Title: "Zed", Type: content.TypeResource, Link: "https://zed.dev", QuickAccess: true},
			{ID: "go", Title: "Go blog", Type: content.TypeArticle, Link: "https://go.dev/blog", QuickAccess: true},
			{ID: "hidden", Title: "Hidden", Type: content.TypeNote},
		},
	}
}

func TestAvailable(t *testing.T) {
	site := testSite()
	assert.DeepEqual(t, section.Available(site), []homepage.SectionID{
		homepage.LatestLogs, homepage.SystemStatus, homepage.QuickAccess, homepage.APIWidget,
	})

	site.Comic = &content.Comic{Num: 1}
	assert.DeepEqual(t, section.Available(site), homepage.Catalogue)
}

func TestResolve_EveryAvailableSection(t *testing.T) {
	site := testSite()
	site.Comic = &content.Comic{Num: 353, Title: "Python", Alt: "import antigravity", Img: "https://imgs.xkcd.com/comics/python.png"}
	d := section.Dispatcher{Site: site}

	for _, id := range section.Available(site) {
		s := d.Resolve(id)
		assert.Assert(t, s != nil, string(id))
		assert.Equal(t, s.ID, id)
		assert.Assert(t, s.Title != "")
		assert.Assert(t, s.Body != "")
	}
}

func TestResolve_Unavailable(t *testing.T) {
	d := section.Dispatcher{Site: testSite()}

	assert.Assert(t, d.Resolve(homepage.XKCD) == nil, "no comic")
	assert.Assert(t, d.Resolve("guestbook") == nil, "unknown id")
}

func TestResolve_LatestLogs(t *testing.T) {
	d := section.Dispatcher{Site: testSite(), LatestPosts: 1}
	s := d.Resolve(homepage.LatestLogs)

	assert.Equal(t, s.Body, "[Go] 2024-05-01\nNewest\nfresh")
	assert.Equal(t, s.Link, "blog/newest")
}

func TestResolve_QuickAccess(t *testing.T) {
	d := section.Dispatcher{Site: testSite()}
	s := d.Resolve(homepage.QuickAccess)

	assert.Equal(t, s.Body, "¶ Go blog\n§ Zed")
	assert.Equal(t, s.Link, "https://go.dev/blog")
}

func TestResolve_SystemStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	d := section.Dispatcher{
		Site:    testSite(),
		Started: start,
		Now:     func() time.Time { return start.Add(90*time.Minute + 500*time.Millisecond) },
	}
	s := d.Resolve(homepage.SystemStatus)

	assert.Check(t, is.Contains(s.Body, "UPTIME:    1h30m0s"))
	assert.Check(t, is.Contains(s.Body, "POSTS:     2"))
	assert.Check(t, is.Contains(s.Body, "RESOURCES: 3"))
}

func TestResolve_APIWidget(t *testing.T) {
	tests := []struct {
		name   string
		widget section.Widget
		want   string
	}{
		{"mtg idle", section.Widget{}, "Enter a card name to search"},
		{"mtg loading", section.Widget{Source: feeds.MTG, Loading: true, Query: "Black Lotus"}, "SEARCHING..."},
		{"fact idle", section.Widget{Source: feeds.DogFact}, "Select an API to generate content"},
		{"fact loading", section.Widget{Source: feeds.DogFact, Loading: true}, "GENERATING..."},
		{"error", section.Widget{Source: feeds.GeekJoke, Err: "boom"}, "ERROR: boom"},
		{"text", section.Widget{Source: feeds.UselessFact, Text: "Honey never spoils.\n"}, "Honey never spoils."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := section.Dispatcher{Widget: tt.widget}.Resolve(homepage.APIWidget)
			assert.Assert(t, strings.HasSuffix(s.Body, tt.want), s.Body)
		})
	}

	s := section.Dispatcher{Widget: section.Widget{Source: feeds.MTG, Query: "Black Lotus"}}.Resolve(homepage.APIWidget)
	assert.Check(t, is.Contains(s.Body, "SELECT_API: < Magic the Gathering >"))
	assert.Check(t, is.Contains(s.Body, "CARD_NAME: Black Lotus"))
}

func TestResolve_XKCD(t *testing.T) {
	site := testSite()
	site.Comic = &content.Comic{Num: 353, Title: "Python", Alt: "import antigravity"}
	s := section.Dispatcher{Site: site}.Resolve(homepage.XKCD)

	assert.Check(t, strings.HasPrefix(s.Body, "#353: Python\nimport antigravity"))
	assert.Equal(t, s.Link, "https://xkcd.com/353/")
}
