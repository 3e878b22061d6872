package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const defaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoProvider uses the keyless DuckDuckGo Instant Answer API. The
// abstract (when present) comes first, followed by related topics in the
// order the API lists them.
type DuckDuckGoProvider struct {
	apiURL string
	client *http.Client
}

func NewDuckDuckGoProvider(apiURL string) *DuckDuckGoProvider {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultDuckDuckGoURL
	}
	return &DuckDuckGoProvider{apiURL: apiURL, client: newHTTPClient()}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	Results       []ddgTopic `json:"Results"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}
	var decoded ddgResponse
	if err := getJSON(ctx, p.client, "duckduckgo", p.apiURL, params, nil, &decoded); err != nil {
		return nil, err
	}

	var results []Result
	if strings.TrimSpace(decoded.AbstractText) != "" {
		results = append(results, Result{
			Title:   decoded.Heading,
			URL:     decoded.AbstractURL,
			Content: strings.TrimSpace(decoded.AbstractText),
		})
	}
	results = appendTopics(results, decoded.Results)
	results = appendTopics(results, decoded.RelatedTopics)
	return truncate(results, opts.Limit), nil
}

// appendTopics flattens grouped topics. The API packs the title into the
// text as "Title - description".
func appendTopics(results []Result, topics []ddgTopic) []Result {
	for _, topic := range topics {
		if len(topic.Topics) > 0 {
			results = appendTopics(results, topic.Topics)
			continue
		}
		if topic.FirstURL == "" || topic.Text == "" {
			continue
		}
		title, snippet, found := strings.Cut(topic.Text, " - ")
		if !found {
			snippet = topic.Text
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(title),
			URL:     topic.FirstURL,
			Content: strings.TrimSpace(snippet),
		})
	}
	return results
}
