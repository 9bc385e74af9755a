package content

import (
	"github.com/sahilm/fuzzy"
)

// Kind distinguishes search hits.
type Kind string

const (
	KindPost     Kind = "post"
	KindResource Kind = "resource"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Kind           Kind
	ID             string
	Title          string
	MatchedIndexes []int
	Score          int
}

type entry struct {
	kind  Kind
	id    string
	title string
}

// entries implements fuzzy.Source over post and resource titles.
type entries []entry

func (e entries) String(i int) string {
	return e[i].title
}

func (e entries) Len() int {
	return len(e)
}

// Search matches query against post and resource titles.
// Returns results sorted by match score (best first).
func Search(site Site, query string) []SearchResult {
	if query == "" {
		return nil
	}

	src := make(entries, 0, len(site.Posts)+len(site.Resources))
	for _, p := range site.Posts {
		src = append(src, entry{KindPost, p.ID, p.Title})
	}
	for _, r := range site.Resources {
		src = append(src, entry{KindResource, r.ID, r.Title})
	}

	matches := fuzzy.FindFrom(query, src)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		e := src[m.Index]
		results[i] = SearchResult{
			Kind:           e.kind,
			ID:             e.id,
			Title:          e.title,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
