package search

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBraveURL = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider implements the Brave Search API.
type BraveProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewBraveProvider(apiKey, apiURL string) (*BraveProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("brave api key is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultBraveURL
	}
	return &BraveProvider{apiKey: apiKey, apiURL: apiURL, client: newHTTPClient()}, nil
}

// braveHit carries the snippet as "description" rather than "content".
type braveHit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type braveResponse struct {
	Web struct {
		Results []braveHit `json:"results"`
	} `json:"web"`
}

func (p *BraveProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	params := url.Values{"q": {query}}
	if opts.Limit > 0 {
		params.Set("count", strconv.Itoa(opts.Limit))
	}
	header := http.Header{}
	header.Set("X-Subscription-Token", p.apiKey)

	var decoded braveResponse
	if err := getJSON(ctx, p.client, "brave", p.apiURL, params, header, &decoded); err != nil {
		return nil, err
	}
	return collect(decoded.Web.Results, opts.Limit, func(b braveHit) Result {
		return hit{Title: b.Title, URL: b.URL, Content: b.Description}.result()
	}), nil
}
