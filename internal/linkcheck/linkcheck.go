// Package linkcheck probes resource links and sorts them into healthy, dead
// and unreachable.
package linkcheck

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/termhome/internal/content"
	"github.com/nikbrunner/termhome/internal/logging"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single resource.
type Result struct {
	Resource   content.Resource
	Status     Status
	StatusCode int    // 0 if the connection failed
	Error      string // set for unreachable links
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options configures a Check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration

	// ExcludeDomains lists hosts whose 404s mean "private", not "dead".
	ExcludeDomains []string

	OnProgress ProgressFunc
	Logger     *slog.Logger
	Client     *http.Client // optional
}

// Check probes every linked resource concurrently. Resources without a link
// are skipped. Results keep the input order.
func Check(ctx context.Context, resources []content.Resource, opts Options) []Result {
	var linked []content.Resource
	for _, r := range resources {
		if r.Link != "" {
			linked = append(linked, r)
		}
	}
	if len(linked) == 0 {
		return nil
	}

	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	exclude := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	results := make([]Result, len(linked))
	jobs := make(chan int, len(linked))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for range opts.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkURL(ctx, client, linked[idx], exclude)
				opts.Logger.Debug("link checked",
					"url", linked[idx].Link,
					"status", results[idx].Status.String(),
					"code", results[idx].StatusCode,
				)

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(linked))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range linked {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// Filter returns the results with status s.
func Filter(results []Result, s Status) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == s {
			out = append(out, r)
		}
	}
	return out
}

func checkURL(ctx context.Context, client *http.Client, res content.Resource, exclude map[string]bool) Result {
	result := Result{Resource: res}

	// HEAD first; some servers only answer GET.
	resp, err := do(ctx, client, http.MethodHead, res.Link)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = do(ctx, client, http.MethodGet, res.Link)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(res.Link, exclude) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 403, 5xx and friends may be temporary or need auth.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "termhome-linkcheck")
	return client.Do(req)
}

// isExcludedDomain checks the URL's host and its parent domains against
// the exclude list.
func isExcludedDomain(rawURL string, exclude map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if exclude[host] {
		return true
	}
	for domain := range exclude {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
