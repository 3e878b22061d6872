// Package toolclient calls tools on the lookout MCP server over streamable
// HTTP. Every call opens its own session and closes it before returning.
package toolclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"frameworks/api_lookout/internal/tool"
	"frameworks/pkg/ctxkeys"
	"frameworks/pkg/logging"
	"frameworks/pkg/middleware"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config configures the tool client.
type Config struct {
	// Endpoint is the MCP URL, e.g. http://127.0.0.1:8000/mcp.
	Endpoint string
	// HTTPClient overrides the transport; tests point it at httptest servers.
	HTTPClient *http.Client
	Version    string
	Logger     logging.Logger
}

// Client is stateless apart from its configuration and is safe for
// concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	impl       *mcp.Implementation
	logger     logging.Logger
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("toolclient: endpoint is required")
	}
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	baseTransport := base.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	return &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Transport: &requestIDTransport{base: baseTransport},
			Timeout:   base.Timeout,
		},
		impl:   &mcp.Implementation{Name: "lookout", Version: version},
		logger: cfg.Logger,
	}, nil
}

func (c *Client) Endpoint() string { return c.endpoint }

// CallTool runs one tool call on a fresh session. Connection and protocol
// problems become transport failures; tool-reported errors become
// application failures.
func (c *Client) CallTool(ctx context.Context, name string, params map[string]any) tool.Result {
	if params == nil {
		params = map[string]any{}
	}

	transport := &mcp.StreamableClientTransport{
		Endpoint:             c.endpoint,
		HTTPClient:           c.httpClient,
		MaxRetries:           -1,
		DisableStandaloneSSE: true,
	}
	client := mcp.NewClient(c.impl, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return connectionFailure(err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && c.logger != nil {
			c.logger.WithError(cerr).WithField("tool", name).Debug("Closing MCP session failed")
		}
	}()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: params,
	})
	if err != nil {
		return connectionFailure(err)
	}
	return interpret(name, result)
}

func connectionFailure(err error) tool.Result {
	return tool.Failure(tool.FailureTransport, "Tool connection failed: "+err.Error())
}

// interpret converts an MCP result into a tool.Result without looking at
// tool-specific payload shapes beyond the {error: string} convention. An
// accompanying code of "not_found" marks missing data.
func interpret(name string, result *mcp.CallToolResult) tool.Result {
	if result == nil {
		return tool.Failure(tool.FailureApplication, fmt.Sprintf("tool %s returned no result", name))
	}
	if result.IsError {
		if text := extractTextContent(result); text != "" {
			return tool.Failure(tool.FailureApplication, text)
		}
		return tool.Failure(tool.FailureApplication, fmt.Sprintf("tool %s returned error", name))
	}

	payload := decodePayload(result)
	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok {
			if code, _ := obj["code"].(string); code == string(tool.FailureNotFound) {
				return tool.Failure(tool.FailureNotFound, msg)
			}
			return tool.Failure(tool.FailureApplication, msg)
		}
	}
	return tool.Success(payload)
}

// decodePayload prefers structured content, then JSON text, then raw text.
func decodePayload(result *mcp.CallToolResult) any {
	if result.StructuredContent != nil {
		return normalize(result.StructuredContent)
	}
	text := extractTextContent(result)
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err == nil {
		return decoded
	}
	return text
}

// normalize round-trips typed values through JSON so downstream code only
// sees maps, slices and scalars.
func normalize(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// extractTextContent joins all TextContent entries from a CallToolResult.
func extractTextContent(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var parts []string
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// requestIDTransport forwards the inbound request ID so tool server logs can
// be correlated with the query that caused them.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if id := ctxkeys.GetRequestID(req.Context()); id != "" {
		req = req.Clone(req.Context())
		req.Header.Set(middleware.RequestIDHeader, id)
	}
	return t.base.RoundTrip(req)
}
