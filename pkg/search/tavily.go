package search

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const defaultTavilyURL = "https://api.tavily.com/search"

// TavilyProvider implements the Tavily Search API. Unlike the other
// providers it takes a JSON POST body with the key inline.
type TavilyProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewTavilyProvider(apiKey, apiURL string) (*TavilyProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("tavily api key is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultTavilyURL
	}
	return &TavilyProvider{apiKey: apiKey, apiURL: apiURL, client: newHTTPClient()}, nil
}

type tavilyQuery struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

func (p *TavilyProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	body := tavilyQuery{APIKey: p.apiKey, Query: query, SearchDepth: opts.SearchDepth, MaxResults: opts.Limit}
	var decoded struct {
		Results []hit `json:"results"`
	}
	if err := postJSON(ctx, p.client, "tavily", p.apiURL, body, &decoded); err != nil {
		return nil, err
	}
	return collect(decoded.Results, opts.Limit, hit.result), nil
}
