// Package feeds fetches the small third-party payloads shown by the API
// widget and the xkcd section.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nikbrunner/termhome/internal/logging"
)

var (
	ErrRequest       = errors.New("request failed")
	ErrCardNotFound  = errors.New("card not found")
	ErrEmptyCardName = errors.New("card name is empty")
	ErrUnknownSource = errors.New("unknown source")
)

// Source is an API widget data source.
type Source string

const (
	MTG         Source = "mtg"
	UselessFact Source = "uselessfact"
	DogFact     Source = "dogfact"
	GeekJoke    Source = "geekjoke"
)

// Sources lists every source in selector order.
var Sources = []Source{MTG, UselessFact, DogFact, GeekJoke}

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}

// Label returns the human-readable name.
func (s Source) Label() string {
	switch s {
	case MTG:
		return "Magic the Gathering"
	case UselessFact:
		return "Useless Fact"
	case DogFact:
		return "Dog Fact"
	case GeekJoke:
		return "Geek Joke"
	default:
		return string(s)
	}
}

// Next returns the following source, wrapping around.
func (s Source) Next() Source {
	for i, src := range Sources {
		if src == s {
			return Sources[(i+1)%len(Sources)]
		}
	}
	return Sources[0]
}

// Endpoints holds the base URLs the client talks to.
type Endpoints struct {
	UselessFact string
	DogFact     string
	GeekJoke    string
	Scryfall    string
	XKCD        string
	Proxy       string
}

// DefaultEndpoints returns the public service URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		UselessFact: "https://uselessfacts.jsph.pl/random.json?language=en",
		DogFact:     "https://dogapi.dog/api/v2/facts?limit=1",
		GeekJoke:    "https://geek-jokes.sameerkumar.website/api?format=json",
		Scryfall:    "https://api.scryfall.com",
		XKCD:        "https://xkcd.com",
		Proxy:       "https://api.allorigins.win/raw",
	}
}

// Options configures a Client. Zero fields take defaults.
type Options struct {
	Timeout   time.Duration
	Endpoints Endpoints
	Logger    *slog.Logger
}

// Client fetches feed content.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	log        *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	def := DefaultEndpoints()
	e := opts.Endpoints
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&e.UselessFact, def.UselessFact)
	fill(&e.DogFact, def.DogFact)
	fill(&e.GeekJoke, def.GeekJoke)
	fill(&e.Scryfall, def.Scryfall)
	fill(&e.XKCD, def.XKCD)
	fill(&e.Proxy, def.Proxy)
	if opts.Logger == nil {
		opts.Logger = logging.New("feeds")
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		endpoints:  e,
		log:        opts.Logger,
	}
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: status %s", ErrRequest, e.status)
}

func (e *statusError) Unwrap() error {
	return ErrRequest
}

// getJSON fetches rawURL and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, status: resp.Status}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// proxied wraps rawURL in the CORS proxy used as a fallback route.
func (c *Client) proxied(rawURL string) string {
	return c.endpoints.Proxy + "?url=" + url.QueryEscape(rawURL)
}
