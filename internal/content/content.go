// Package content loads the markdown blog posts and resource links that the
// homepage sections display.
package content

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Post is a blog post from content/blog.
type Post struct {
	ID         string
	Title      string
	Date       time.Time
	Category   string
	Tags       []string
	Draft      bool
	CoverImage string
	ReadTime   string
	Excerpt    string
	Body       string
}

// ResourceType classifies a resource link.
type ResourceType string

const (
	TypeArticle  ResourceType = "Article"
	TypeResource ResourceType = "Resource"
	TypeAudio    ResourceType = "Audio"
	TypeVideo    ResourceType = "Video"
	TypeNote     ResourceType = "Note"
)

// ResourceTypes lists the valid resource types.
var ResourceTypes = []ResourceType{TypeArticle, TypeResource, TypeAudio, TypeVideo, TypeNote}

// Icon returns a one-cell glyph for the type.
func (t ResourceType) Icon() string {
	switch t {
	case TypeArticle:
		return "¶"
	case TypeAudio:
		return "♪"
	case TypeVideo:
		return "▶"
	case TypeNote:
		return "✎"
	default:
		return "§"
	}
}

// Resource is a saved link from content/resources.
type Resource struct {
	ID          string
	Title       string
	Date        time.Time
	Topic       string
	Type        ResourceType
	Link        string
	AudioURL    string
	Comment     string
	Duration    string
	Domain      string
	QuickAccess bool
	Body        string
}

// Comic is an xkcd strip.
type Comic struct {
	Num   int    `json:"num"`
	Img   string `json:"img"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// URL returns the comic's page on xkcd.com.
func (c Comic) URL() string {
	return "https://xkcd.com/" + strconv.Itoa(c.Num) + "/"
}

// ExplainURL returns the comic's explainxkcd page.
func (c Comic) ExplainURL() string {
	return "https://www.explainxkcd.com/wiki/index.php/" + strconv.Itoa(c.Num)
}

// Site is everything loaded from a content directory.
type Site struct {
	Posts     []Post // newest first
	Resources []Resource
	Comic     *Comic
}

// LatestPosts returns up to n of the newest posts.
func (s Site) LatestPosts(n int) []Post {
	if n < 0 || n > len(s.Posts) {
		n = len(s.Posts)
	}
	return s.Posts[:n]
}

// QuickAccess returns the resources flagged for the quick access panel,
// ordered by title.
func (s Site) QuickAccess() []Resource {
	var out []Resource
	for _, r := range s.Resources {
		if r.QuickAccess {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b Resource) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return out
}

// Post finds a post by ID.
func (s Site) Post(id string) (Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Resource finds a resource by ID.
func (s Site) Resource(id string) (Resource, bool) {
	for _, r := range s.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}
