package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikbrunner/termhome/internal/content"
)

// LatestComic fetches the current xkcd strip.
func (c *Client) LatestComic(ctx context.Context) (*content.Comic, error) {
	var comic content.Comic
	if err := c.getJSON(ctx, strings.TrimSuffix(c.endpoints.XKCD, "/")+"/info.0.json", &comic); err != nil {
		return nil, fmt.Errorf("fetch comic: %w", err)
	}
	if comic.Num == 0 {
		return nil, fmt.Errorf("fetch comic: %w: missing num", ErrRequest)
	}
	return &comic, nil
}
