// Package wikipedia implements a reference fetcher backed by the
// MediaWiki action API.
package wikipedia

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"log/slog"

	"github.com/explainwell/concept-evaluator/internal/adapter/observability"
	"github.com/explainwell/concept-evaluator/internal/config"
	"github.com/explainwell/concept-evaluator/internal/domain"
)

// Client implements domain.ReferenceFetcher against the MediaWiki
// action API (plain-text extracts, no HTML parsing).
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a fetcher with the configured timeout.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.FetchTimeout},
	}
}

func (c *Client) getBackoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	return expo
}

// get performs one API call with retries. 4xx responses are not retried.
func (c *Client) get(ctx domain.Context, operation string, params url.Values, out any) error {
	params.Set("format", "json")
	endpoint := c.cfg.WikipediaAPIURL + "?" + params.Encode()

	op := func() error {
		start := time.Now()
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.hc.Do(r)
		observability.ExternalRequestsTotal.WithLabelValues("wikipedia", operation).Inc()
		observability.ExternalRequestDuration.WithLabelValues("wikipedia", operation).Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("reference provider rate limited", slog.String("provider", "wikipedia"), slog.String("op", operation), slog.Int("status", resp.StatusCode))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			slog.Warn("reference provider 4xx", slog.String("provider", "wikipedia"), slog.String("op", operation), slog.Int("status", resp.StatusCode))
			return backoff.Permanent(fmt.Errorf("wikipedia status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("reference provider non-2xx", slog.String("provider", "wikipedia"), slog.String("op", operation), slog.Int("status", resp.StatusCode))
			return fmt.Errorf("wikipedia status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			slog.Error("reference provider decode error", slog.String("provider", "wikipedia"), slog.String("op", operation), slog.Any("error", err))
			return err
		}
		return nil
	}

	bo := backoff.WithContext(c.getBackoffConfig(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return fmt.Errorf("%w: wikipedia %s: %v", domain.ErrServiceUnavailable, operation, err)
	}
	return nil
}

// Search returns article titles matching the query, most relevant first.
func (c *Client) Search(ctx domain.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))

	var out struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.get(ctx, "search", params, &out); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(out.Query.Search))
	for _, hit := range out.Query.Search {
		titles = append(titles, hit.Title)
	}
	slog.Debug("wikipedia search completed", slog.String("query", query), slog.Int("results", len(titles)))
	return titles, nil
}

// Fetch retrieves one article as plain text, following redirects. The
// summary is the extract text before the first section heading.
func (c *Client) Fetch(ctx domain.Context, title string) (domain.ReferenceDocument, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|info")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("inprop", "url")
	params.Set("titles", title)

	var out struct {
		Query struct {
			Pages map[string]struct {
				Title   string    `json:"title"`
				Extract string    `json:"extract"`
				FullURL string    `json:"fullurl"`
				Missing *struct{} `json:"missing,omitempty"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.get(ctx, "fetch", params, &out); err != nil {
		return domain.ReferenceDocument{}, err
	}

	for id, page := range out.Query.Pages {
		if id == "-1" || page.Missing != nil || page.Extract == "" {
			continue
		}
		return domain.ReferenceDocument{
			Title:   page.Title,
			Summary: leadSection(page.Extract),
			Body:    page.Extract,
			URL:     page.FullURL,
		}, nil
	}
	return domain.ReferenceDocument{}, fmt.Errorf("%w: no article for %q", domain.ErrReferenceNotFound, title)
}

// leadSection returns the text before the first "==" heading.
func leadSection(extract string) string {
	if i := strings.Index(extract, "\n=="); i >= 0 {
		return strings.TrimSpace(extract[:i])
	}
	return strings.TrimSpace(extract)
}
