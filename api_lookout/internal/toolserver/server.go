// Package toolserver exposes the lookout tools over MCP.
package toolserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"frameworks/api_lookout/internal/tool"
	"frameworks/pkg/logging"
	"frameworks/pkg/search"
	"frameworks/pkg/version"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultSearchLimit = 5
	noTitle            = "No Title"
)

type ResourceSearcher interface {
	SearchResources(ctx context.Context, query string, limit int) ([]Resource, error)
}

type TicketSource interface {
	RandomTicket(ctx context.Context) (Ticket, error)
}

type SearchProvider interface {
	Search(ctx context.Context, query string, opts search.SearchOptions) ([]search.Result, error)
}

type Config struct {
	Resources   ResourceSearcher
	Tickets     TicketSource
	WebSearch   SearchProvider
	DuckDuckGo  SearchProvider
	Logger      logging.Logger
	SearchLimit int
}

// NewServer registers resource_search, web_search, duckduckgo_search and
// get_ticket_info.
func NewServer(cfg Config) *mcp.Server {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "lookout-tools",
		Version: version.Version,
	}, nil)

	registerResourceSearch(srv, cfg)
	registerProviderSearch(srv, cfg, tool.WebSearch, "General-purpose web search.", cfg.WebSearch)
	registerProviderSearch(srv, cfg, tool.DuckDuckGoSearch, "Technical search through DuckDuckGo with consistent formatting.", cfg.DuckDuckGo)
	registerTicketInfo(srv, cfg)

	return srv
}

type searchInput struct {
	Query string `json:"query" jsonschema:"free-text search query"`
}

type searchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

type searchResponse struct {
	Results []searchHit `json:"results"`
}

type ticketResponse struct {
	TicketID  string `json:"ticket_id,omitempty"`
	AgentName string `json:"agent_name,omitempty"`
	Country   string `json:"country,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// --- resource_search ---

func registerResourceSearch(srv *mcp.Server, cfg Config) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        tool.ResourceSearch,
			Description: "Search the curated internal resource list.",
		},
		func(ctx context.Context, _ *mcp.CallToolRequest, args searchInput) (*mcp.CallToolResult, any, error) {
			return handleResourceSearch(ctx, args, cfg)
		},
	)
}

func handleResourceSearch(ctx context.Context, args searchInput, cfg Config) (*mcp.CallToolResult, any, error) {
	if cfg.Resources == nil {
		return toolError(tool.ResourceSearch, "resource store unavailable")
	}
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return toolError(tool.ResourceSearch, "query is required")
	}

	start := time.Now()
	resources, err := cfg.Resources.SearchResources(ctx, query, cfg.SearchLimit)
	toolDuration.WithLabelValues(tool.ResourceSearch).Observe(time.Since(start).Seconds())
	if err != nil {
		logWarn(cfg, err, tool.ResourceSearch, query)
		return toolError(tool.ResourceSearch, fmt.Sprintf("resource_search failed: %v", err))
	}

	hits := make([]searchHit, 0, len(resources))
	for _, r := range resources {
		hits = append(hits, newHit(r.Title, r.Snippet, r.URL))
	}
	return searchSuccess(cfg, tool.ResourceSearch, query, hits)
}

// --- web_search, duckduckgo_search ---

func registerProviderSearch(srv *mcp.Server, cfg Config, name, description string, provider SearchProvider) {
	mcp.AddTool(srv,
		&mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *mcp.CallToolRequest, args searchInput) (*mcp.CallToolResult, any, error) {
			return handleProviderSearch(ctx, args, cfg, name, provider)
		},
	)
}

func handleProviderSearch(ctx context.Context, args searchInput, cfg Config, name string, provider SearchProvider) (*mcp.CallToolResult, any, error) {
	if provider == nil {
		return toolError(name, "search provider unavailable")
	}
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return toolError(name, "query is required")
	}

	start := time.Now()
	results, err := provider.Search(ctx, query, search.SearchOptions{Limit: cfg.SearchLimit})
	toolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		logWarn(cfg, err, name, query)
		return toolError(name, fmt.Sprintf("%s failed: %v", name, err))
	}
	if len(results) > cfg.SearchLimit {
		results = results[:cfg.SearchLimit]
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, newHit(r.Title, r.Content, r.URL))
	}
	return searchSuccess(cfg, name, query, hits)
}

// --- get_ticket_info ---

type ticketInput struct{}

func registerTicketInfo(srv *mcp.Server, cfg Config) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        tool.GetTicketInfo,
			Description: "Fetch one support ticket, returning only ticket_id, agent_name and country.",
		},
		func(ctx context.Context, _ *mcp.CallToolRequest, _ ticketInput) (*mcp.CallToolResult, any, error) {
			return handleTicketInfo(ctx, cfg)
		},
	)
}

func handleTicketInfo(ctx context.Context, cfg Config) (*mcp.CallToolResult, any, error) {
	if cfg.Tickets == nil {
		return toolError(tool.GetTicketInfo, "ticket store unavailable")
	}

	start := time.Now()
	ticket, err := cfg.Tickets.RandomTicket(ctx)
	toolDuration.WithLabelValues(tool.GetTicketInfo).Observe(time.Since(start).Seconds())
	if errors.Is(err, ErrNoTicket) {
		toolRequestsTotal.WithLabelValues(tool.GetTicketInfo, "not_found").Inc()
		return toolSuccess(errorResponse{Error: ErrNoTicket.Error(), Code: string(tool.FailureNotFound)})
	}
	if err != nil {
		logWarn(cfg, err, tool.GetTicketInfo, "")
		return toolError(tool.GetTicketInfo, fmt.Sprintf("ticket lookup failed: %v", err))
	}

	toolRequestsTotal.WithLabelValues(tool.GetTicketInfo, "success").Inc()
	return toolSuccess(ticketResponse{
		TicketID:  ticket.TicketID,
		AgentName: ticket.AgentName,
		Country:   ticket.Country,
	})
}

// --- helpers ---

func newHit(title, snippet, url string) searchHit {
	title = strings.TrimSpace(title)
	if title == "" {
		title = noTitle
	}
	return searchHit{Title: title, Snippet: strings.TrimSpace(snippet), URL: strings.TrimSpace(url)}
}

func searchSuccess(cfg Config, name, query string, hits []searchHit) (*mcp.CallToolResult, any, error) {
	toolRequestsTotal.WithLabelValues(name, "success").Inc()
	toolResultsCount.WithLabelValues(name).Observe(float64(len(hits)))
	if cfg.Logger != nil {
		cfg.Logger.WithFields(logging.Fields{"tool": name, "query": query, "results": len(hits)}).Debug("Tool search finished")
	}
	return toolSuccess(searchResponse{Results: hits})
}

func logWarn(cfg Config, err error, name, query string) {
	if cfg.Logger == nil {
		return
	}
	cfg.Logger.WithError(err).WithFields(logging.Fields{"tool": name, "query": query}).Warn("Tool call failed")
}

func toolError(name, message string) (*mcp.CallToolResult, any, error) {
	toolRequestsTotal.WithLabelValues(name, "error").Inc()
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}, nil, nil
}

func toolSuccess(result any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("failed to format result: %v", err)}},
			IsError: true,
		}, nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, result, nil
}
