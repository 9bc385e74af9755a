package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFrontmatter is wrapped by every validation failure.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

const defaultCategory = "Uncategorized"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type postFrontmatter struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Category   string   `yaml:"category"`
	Tags       []string `yaml:"tags"`
	Draft      bool     `yaml:"draft"`
	CoverImage string   `yaml:"coverImage"`
	ReadTime   string   `yaml:"readTime"`
	Excerpt    string   `yaml:"excerpt"`
}

type resourceFrontmatter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Topic       string `yaml:"topic"`
	Type        string `yaml:"type"`
	Link        string `yaml:"link,omitempty"`
	AudioURL    string `yaml:"audioUrl,omitempty"`
	Comment     string `yaml:"comment,omitempty"`
	Duration    string `yaml:"duration,omitempty"`
	Domain      string `yaml:"domain,omitempty"`
	QuickAccess string `yaml:"quick-access,omitempty"`
}

// Load reads dir/blog and dir/resources. Missing subdirectories are empty.
//
// Invalid files are skipped; the returned Site holds every valid entry and
// the error joins one failure per skipped file, each prefixed with its path.
func Load(dir string) (Site, error) {
	var site Site
	var errs []error

	err := walkMarkdown(filepath.Join(dir, "blog"), func(path, id string, data []byte) {
		p, err := parsePost(id, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return
		}
		if !p.Draft {
			site.Posts = append(site.Posts, p)
		}
	})
	if err != nil {
		return Site{}, err
	}

	err = walkMarkdown(filepath.Join(dir, "resources"), func(path, id string, data []byte) {
		r, err := parseResource(id, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return
		}
		site.Resources = append(site.Resources, r)
	})
	if err != nil {
		return Site{}, err
	}

	slices.SortStableFunc(site.Posts, func(a, b Post) int {
		return b.Date.Compare(a.Date)
	})
	slices.SortStableFunc(site.Resources, func(a, b Resource) int {
		return b.Date.Compare(a.Date)
	})

	return site, errors.Join(errs...)
}

// walkMarkdown calls fn for each .md/.mdx file under root with its ID, the
// slash-separated path relative to root without extension.
func walkMarkdown(root string, fn func(path, id string, data []byte)) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".mdx" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fn(path, filepath.ToSlash(strings.TrimSuffix(rel, ext)), data)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func parsePost(id string, data []byte) (Post, error) {
	var fm postFrontmatter
	body, err := splitFrontmatter(data, &fm)
	if err != nil {
		return Post{}, err
	}

	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, fmt.Errorf("%w: title is required", ErrInvalidFrontmatter)
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return Post{}, err
	}
	category := fm.Category
	if category == "" {
		category = defaultCategory
	}

	return Post{
		ID:         id,
		Title:      fm.Title,
		Date:       date,
		Category:   category,
		Tags:       fm.Tags,
		Draft:      fm.Draft,
		CoverImage: fm.CoverImage,
		ReadTime:   fm.ReadTime,
		Excerpt:    fm.Excerpt,
		Body:       body,
	}, nil
}

func parseResource(id string, data []byte) (Resource, error) {
	var fm resourceFrontmatter
	body, err := splitFrontmatter(data, &fm)
	if err != nil {
		return Resource{}, err
	}

	if strings.TrimSpace(fm.Title) == "" {
		return Resource{}, fmt.Errorf("%w: title is required", ErrInvalidFrontmatter)
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return Resource{}, err
	}
	if strings.TrimSpace(fm.Topic) == "" {
		return Resource{}, fmt.Errorf("%w: topic is required", ErrInvalidFrontmatter)
	}
	typ := ResourceType(fm.Type)
	if !slices.Contains(ResourceTypes, typ) {
		return Resource{}, fmt.Errorf("%w: type %q is not one of %v", ErrInvalidFrontmatter, fm.Type, ResourceTypes)
	}
	for field, v := range map[string]string{"link": fm.Link, "audioUrl": fm.AudioURL} {
		if v != "" && !isURL(v) {
			return Resource{}, fmt.Errorf("%w: %s %q is not a URL", ErrInvalidFrontmatter, field, v)
		}
	}
	var quick bool
	switch fm.QuickAccess {
	case "", "no":
	case "yes":
		quick = true
	default:
		return Resource{}, fmt.Errorf("%w: quick-access must be yes or no, got %q", ErrInvalidFrontmatter, fm.QuickAccess)
	}

	return Resource{
		ID:          id,
		Title:       fm.Title,
		Date:        date,
		Topic:       fm.Topic,
		Type:        typ,
		Link:        fm.Link,
		AudioURL:    fm.AudioURL,
		Comment:     fm.Comment,
		Duration:    fm.Duration,
		Domain:      fm.Domain,
		QuickAccess: quick,
		Body:        body,
	}, nil
}

// splitFrontmatter decodes the leading "---" block into fm and returns the
// remaining body.
func splitFrontmatter(data []byte, fm any) (string, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return "", fmt.Errorf("%w: missing frontmatter", ErrInvalidFrontmatter)
	}
	rest := data[len("---\n"):]

	var header, body []byte
	if bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, []byte("---")) {
		header, body = nil, bytes.TrimPrefix(rest[3:], []byte("\n"))
	} else {
		end := bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated frontmatter", ErrInvalidFrontmatter)
		}
		header = rest[:end]
		body = rest[end+len("\n---"):]
		if i := bytes.IndexByte(body, '\n'); i >= 0 {
			body = body[i+1:]
		} else {
			body = nil
		}
	}

	if err := yaml.Unmarshal(header, fm); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return strings.TrimSpace(string(body)), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidFrontmatter)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse date %q", ErrInvalidFrontmatter, s)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
