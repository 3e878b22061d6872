package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider defines the interface for web search providers.
type Provider interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// Result is one hit. Content is the short snippet the provider returned.
type Result struct {
	Title   string
	URL     string
	Content string
	Score   float64
}

// SearchOptions controls search behavior across providers.
type SearchOptions struct {
	Limit       int
	SearchDepth string
}

const defaultClientTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultClientTimeout}
}

// doJSON executes req and decodes a 2xx JSON body into out. name prefixes
// every error so callers can tell providers apart in logs.
func doJSON(client *http.Client, req *http.Request, name string, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s request failed with status %d", name, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

// getJSON issues a GET against base with params merged into its query string.
func getJSON(ctx context.Context, client *http.Client, name, base string, params url.Values, header http.Header, out any) error {
	endpoint, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parse %s url: %w", name, err)
	}
	merged := endpoint.Query()
	for key, values := range params {
		merged[key] = values
	}
	endpoint.RawQuery = merged.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", name, err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	return doJSON(client, req, name, out)
}

// postJSON sends body as a JSON document and decodes the reply into out.
func postJSON(ctx context.Context, client *http.Client, name, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, name, out)
}

// hit is the title/url/snippet triple most providers return.
type hit struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

func (h hit) result() Result {
	return Result{Title: h.Title, URL: h.URL, Content: strings.TrimSpace(h.Content), Score: h.Score}
}

func collect[T any](items []T, limit int, convert func(T) Result) []Result {
	out := make([]Result, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return truncate(out, limit)
}

func truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
