package feeds

import (
	"context"
	"fmt"
	"strings"
)

const (
	noFact = "No fact available"
	noJoke = "No joke available"
)

type uselessFactResponse struct {
	Text string `json:"text"`
}

type dogFactResponse struct {
	Data []struct {
		Body       string `json:"body"`
		Attributes struct {
			Body string `json:"body"`
		} `json:"attributes"`
	} `json:"data"`
}

type geekJokeResponse struct {
	Joke string `json:"joke"`
}

// Fact fetches a fact or joke from src. The direct endpoint is tried first
// and the proxy second. A response without text yields a placeholder.
func (c *Client) Fact(ctx context.Context, src Source) (string, error) {
	var target string
	switch src {
	case UselessFact:
		target = c.endpoints.UselessFact
	case DogFact:
		target = c.endpoints.DogFact
	case GeekJoke:
		target = c.endpoints.GeekJoke
	default:
		return "", fmt.Errorf("%w: %q has no facts", ErrUnknownSource, src)
	}

	text, err := c.fetchFact(ctx, src, target)
	if err == nil {
		return text, nil
	}
	c.log.Debug("direct fetch failed, trying proxy", "source", src, "error", err)

	text, err = c.fetchFact(ctx, src, c.proxied(target))
	if err != nil {
		c.log.Warn("fetch failed", "source", src, "error", err)
		return "", fmt.Errorf("fetch %s: %w", src, err)
	}
	return text, nil
}

func (c *Client) fetchFact(ctx context.Context, src Source, rawURL string) (string, error) {
	switch src {
	case UselessFact:
		var r uselessFactResponse
		if err := c.getJSON(ctx, rawURL, &r); err != nil {
			return "", err
		}
		return orDefault(r.Text, noFact), nil

	case DogFact:
		var r dogFactResponse
		if err := c.getJSON(ctx, rawURL, &r); err != nil {
			return "", err
		}
		if len(r.Data) == 0 {
			return noFact, nil
		}
		return orDefault(orDefault(r.Data[0].Attributes.Body, r.Data[0].Body), noFact), nil

	default:
		var r geekJokeResponse
		if err := c.getJSON(ctx, rawURL, &r); err != nil {
			return "", err
		}
		return orDefault(r.Joke, noJoke), nil
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
