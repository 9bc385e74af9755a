package content

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

const defaultTopic = "Bookmarks"

// ParseBookmarksHTML parses a Netscape bookmark file into resources. Each
// link's topic is the name of its innermost folder.
func ParseBookmarksHTML(r io.Reader) ([]Resource, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var resources []Resource

	// Track current folder stack for topics
	var folderStack []string
	var pendingFolder string // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingFolder = getTextContent(n)
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				topic := defaultTopic
				if len(folderStack) > 0 {
					topic = folderStack[len(folderStack)-1]
				}

				date := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						date = time.Unix(ts, 0)
					}
				}

				resources = append(resources, Resource{
					ID:     Slug(title),
					Title:  title,
					Date:   date.UTC(),
					Topic:  topic,
					Type:   TypeResource,
					Link:   href,
					Domain: domainOf(href),
				})
				return // Don't recurse into A

			case "dl":
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return resources, nil
}

// WriteResource stores res as a markdown file under dir/resources and
// returns its path. An existing file is never overwritten; a numeric suffix
// is added instead.
func WriteResource(dir string, res Resource) (string, error) {
	fm := resourceFrontmatter{
		Title:    res.Title,
		Date:     res.Date.Format("2006-01-02"),
		Topic:    res.Topic,
		Type:     string(res.Type),
		Link:     res.Link,
		AudioURL: res.AudioURL,
		Comment:  res.Comment,
		Duration: res.Duration,
		Domain:   res.Domain,
	}
	if res.QuickAccess {
		fm.QuickAccess = "yes"
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	if res.Body != "" {
		b.WriteString("\n")
		b.WriteString(res.Body)
		b.WriteString("\n")
	}

	resDir := filepath.Join(dir, "resources")
	if err := os.MkdirAll(resDir, 0755); err != nil {
		return "", err
	}

	base := res.ID
	if base == "" {
		base = Slug(res.Title)
	}
	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s-%d", base, i)
		}
		path := filepath.Join(resDir, name+".md")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.WriteString(b.String()); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

func domainOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
