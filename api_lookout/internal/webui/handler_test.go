package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"frameworks/api_lookout/internal/engine"
	"frameworks/api_lookout/internal/evidence"
	"frameworks/api_lookout/internal/intent"
	"frameworks/api_lookout/internal/response"
	"frameworks/pkg/ctxkeys"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeEngine struct {
	queries []string
	result  engine.Result
}

func (f *fakeEngine) Handle(_ context.Context, query string) engine.Result {
	f.queries = append(f.queries, query)
	return f.result
}

func setupRouter(e Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	r := gin.New()
	NewHandler(e, logger).Register(r)
	return r
}

func ticketResult() engine.Result {
	record := evidence.TicketRecord{TicketID: "T-1", AgentName: "Asha", Country: "IN"}
	return engine.Result{
		Mode:      intent.ModeTicket,
		Document:  response.NewAssembler().Ticket(record, "HEADER:"),
		Tools:     []engine.ToolStatus{{Tool: "get_ticket_info", Status: "success", Elapsed: 5 * time.Millisecond}},
		LLMStatus: engine.LLMSuccess,
	}
}

func postForm(r http.Handler, query string) *httptest.ResponseRecorder {
	form := url.Values{"query": {query}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexRendersForm(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(&fakeEngine{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `name="query"`) {
		t.Fatal("form missing")
	}
	if strings.Contains(body, "Processed in") {
		t.Fatal("empty page should not show a result")
	}
}

func TestSubmitRendersDocument(t *testing.T) {
	eng := &fakeEngine{result: ticketResult()}
	w := postForm(setupRouter(eng), "  my ticket status  ")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(eng.queries) != 1 || eng.queries[0] != "my ticket status" {
		t.Fatalf("unexpected queries %v", eng.queries)
	}
	body := w.Body.String()
	for _, want := range []string{"Ticket ID: T-1", "Processed in ", `value="my ticket status"`} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestSubmitElapsedCountsFromRequestStart(t *testing.T) {
	r := setupRouter(&fakeEngine{result: ticketResult()})
	form := url.Values{"query": {"my ticket"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(ctxkeys.WithRequestStart(req.Context(), time.Now().Add(-3*time.Second)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if body := w.Body.String(); !strings.Contains(body, "Processed in 3.") {
		t.Fatalf("expected elapsed measured from request start, got:\n%s", body)
	}
}

func TestSubmitBlankQuerySkipsEngine(t *testing.T) {
	eng := &fakeEngine{result: ticketResult()}
	w := postForm(setupRouter(eng), "   ")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(eng.queries) != 0 {
		t.Fatal("engine should not run for a blank query")
	}
}

func TestSubmitErrorIsStill200(t *testing.T) {
	eng := &fakeEngine{result: engine.Result{
		Mode:      intent.ModeTicket,
		Document:  response.NewAssembler().TicketFailure("Tool connection failed: refused"),
		LLMStatus: engine.LLMSkipped,
	}}
	w := postForm(setupRouter(eng), "ticket")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Tool connection failed: refused") {
		t.Fatal("error fragment missing")
	}
}

func TestQueryAPI(t *testing.T) {
	eng := &fakeEngine{result: ticketResult()}
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"my ticket"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(eng).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp QueryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mode != "ticket" || !strings.Contains(resp.HTML, "Asha") || resp.LLMStatus != "success" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Tools) != 1 || resp.Tools[0].ElapsedMS != 5 {
		t.Fatalf("unexpected tools %+v", resp.Tools)
	}
}

func TestQueryAPIRejectsBlankQuery(t *testing.T) {
	eng := &fakeEngine{}
	for _, body := range []string{`{"query":"  "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(eng).ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}
	if len(eng.queries) != 0 {
		t.Fatal("engine should not run")
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(1234 * time.Millisecond); got != "1.23" {
		t.Fatalf("unexpected %q", got)
	}
}
