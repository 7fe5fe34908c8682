// Package embed implements semantic similarity backed by an
// OpenAI-compatible embeddings endpoint.
package embed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"log/slog"

	"github.com/explainwell/concept-evaluator/internal/adapter/observability"
	"github.com/explainwell/concept-evaluator/internal/config"
	"github.com/explainwell/concept-evaluator/internal/domain"
)

// Client implements domain.SimilarityService by embedding both texts in
// one request and taking the cosine of the returned vectors.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs an embeddings client with the configured timeout.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.EmbedTimeout},
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

// readSnippet reads up to n bytes from r for log output.
func readSnippet(r io.Reader, n int) string {
	b, _ := io.ReadAll(io.LimitReader(r, int64(n)))
	return string(b)
}

// Similarity embeds a and b and returns their cosine similarity in [0,1].
func (c *Client) Similarity(ctx domain.Context, a, b string) (float64, error) {
	if c.cfg.OpenAIAPIKey == "" || c.cfg.EmbeddingsModel == "" {
		// Do not log secrets; only indicate presence
		slog.Error("embeddings API key or model missing", slog.String("provider", "openai"), slog.Bool("has_api_key", c.cfg.OpenAIAPIKey != ""), slog.String("model", c.cfg.EmbeddingsModel))
		return 0, fmt.Errorf("%w: OPENAI_API_KEY or EMBEDDINGS_MODEL missing", domain.ErrInvalidArgument)
	}

	body := map[string]any{
		"model": c.cfg.EmbeddingsModel,
		"input": []string{a, b},
	}
	payload, _ := json.Marshal(body)
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	op := func() error {
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenAIBaseURL+"/embeddings", bytes.NewReader(payload))
		r.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		observability.ExternalRequestsTotal.WithLabelValues("openai", "embed").Inc()
		observability.ExternalRequestDuration.WithLabelValues("openai", "embed").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("embeddings provider rate limited", slog.String("provider", "openai"), slog.Int("status", resp.StatusCode))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client error: non-retryable
			slog.Warn("embeddings provider 4xx", slog.String("provider", "openai"), slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.EmbeddingsModel), slog.String("body", readSnippet(resp.Body, 512)))
			return backoff.Permanent(fmt.Errorf("embed status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("embeddings provider non-2xx", slog.String("provider", "openai"), slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.EmbeddingsModel), slog.String("body", readSnippet(resp.Body, 512)))
			return fmt.Errorf("embed status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			slog.Error("embeddings provider decode error", slog.String("provider", "openai"), slog.String("model", c.cfg.EmbeddingsModel), slog.Any("error", err))
			return err
		}
		return nil
	}

	bo := backoff.WithContext(c.getBackoffConfig(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		slog.Error("embeddings API failed after retries", slog.String("provider", "openai"), slog.Any("error", err))
		return 0, fmt.Errorf("%w: embeddings api: %v", domain.ErrServiceUnavailable, err)
	}

	if len(out.Data) != 2 {
		slog.Error("embeddings API returned unexpected data length", slog.String("provider", "openai"), slog.Int("data_count", len(out.Data)))
		return 0, fmt.Errorf("%w: embeddings api returned %d vectors, want 2", domain.ErrServiceUnavailable, len(out.Data))
	}

	sim := cosine(out.Data[0].Embedding, out.Data[1].Embedding)
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
