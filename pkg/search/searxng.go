package search

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// SearxngProvider queries a self-hosted SearXNG instance.
type SearxngProvider struct {
	base   string
	client *http.Client
}

func NewSearxngProvider(apiURL string) (*SearxngProvider, error) {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return nil, errors.New("searxng api url is required")
	}
	return &SearxngProvider{base: strings.TrimRight(apiURL, "/"), client: newHTTPClient()}, nil
}

func (p *SearxngProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	var decoded struct {
		Results []hit `json:"results"`
	}
	params := url.Values{"q": {query}, "format": {"json"}}
	if err := getJSON(ctx, p.client, "searxng", p.base+"/search", params, nil, &decoded); err != nil {
		return nil, err
	}
	// Result counts in the query string are ignored by SearXNG.
	return collect(decoded.Results, opts.Limit, hit.result), nil
}
