// Package webui serves the query form and the JSON query endpoint.
package webui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"frameworks/api_lookout/internal/engine"
	"frameworks/api_lookout/internal/response"
	"frameworks/pkg/ctxkeys"
	"frameworks/pkg/logging"
	"frameworks/pkg/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// Engine answers one query. engine.Engine implements it.
type Engine interface {
	Handle(ctx context.Context, query string) engine.Result
}

type Handler struct {
	engine Engine
	logger logging.Logger
}

func NewHandler(e Engine, logger logging.Logger) *Handler {
	return &Handler{engine: e, logger: logger}
}

// Register mounts the form page at / and the JSON endpoint at /api/query.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/", h.Submit)
	r.POST("/api/query", h.Query)
}

type page struct {
	Query   string
	Result  template.HTML
	Elapsed string
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Mode           string       `json:"mode"`
	HTML           string       `json:"html"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
	LLMStatus      string       `json:"llm_status"`
	Tools          []ToolStatus `json:"tools"`
	Errors         []string     `json:"errors,omitempty"`
}

type ToolStatus struct {
	Tool      string `json:"tool"`
	Status    string `json:"status"`
	Kind      string `json:"kind,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

func (h *Handler) Index(c *gin.Context) {
	h.render(c, page{})
}

// Submit handles the form post. A blank query just shows the form again.
func (h *Handler) Submit(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		h.render(c, page{})
		return
	}

	start := requestStart(c)
	result := h.engine.Handle(c.Request.Context(), query)
	body, err := response.HTML(result.Document)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, page{
		Query:   query,
		Result:  body,
		Elapsed: FormatElapsed(time.Since(start)),
	})
}

func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	start := requestStart(c)
	result := h.engine.Handle(c.Request.Context(), query)
	body, err := response.HTML(result.Document)
	if err != nil {
		middleware.GetContextLogger(c, h.logger).WithError(err).Error("Failed to render document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render response"})
		return
	}
	tools := make([]ToolStatus, 0, len(result.Tools))
	for _, t := range result.Tools {
		tools = append(tools, ToolStatus{Tool: t.Tool, Status: t.Status, Kind: t.Kind, ElapsedMS: t.Elapsed.Milliseconds()})
	}
	c.JSON(http.StatusOK, QueryResponse{
		Mode:           string(result.Mode),
		HTML:           string(body),
		ElapsedSeconds: time.Since(start).Seconds(),
		LLMStatus:      result.LLMStatus,
		Tools:          tools,
		Errors:         result.Document.Errors(),
	})
}

// requestStart is the time the request middleware stamped, or now when the
// handler is mounted without it.
func requestStart(c *gin.Context) time.Time {
	if start, ok := ctxkeys.GetRequestStart(c.Request.Context()); ok {
		return start
	}
	return time.Now()
}

// FormatElapsed renders a duration the way the page footer shows it.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}

func (h *Handler) render(c *gin.Context, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) fail(c *gin.Context, err error) {
	middleware.GetContextLogger(c, h.logger).WithError(err).Error("Failed to render page")
	c.String(http.StatusInternalServerError, "internal error")
}
