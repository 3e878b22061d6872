package invoker

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"frameworks/api_lookout/internal/evidence"
	"frameworks/api_lookout/internal/tool"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeBridge struct {
	mu      sync.Mutex
	calls   []tool.Call
	results map[string]tool.Result
	delays  map[string]time.Duration
}

func (f *fakeBridge) Invoke(_ context.Context, call tool.Call) tool.Result {
	if d := f.delays[call.Name]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if r, ok := f.results[call.Name]; ok {
		return r
	}
	return tool.Success(map[string]any{"results": []any{}})
}

func (f *fakeBridge) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		names = append(names, c.Name)
	}
	return names
}

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestTicketMakesExactlyOneCall(t *testing.T) {
	bridge := &fakeBridge{results: map[string]tool.Result{
		tool.GetTicketInfo: tool.Success(map[string]any{"ticket_id": "T-1", "agent_name": "Asha", "country": "IN", "secret": "x"}),
	}}
	out := New(bridge, false, nullLogger()).Ticket(context.Background())

	if !reflect.DeepEqual(bridge.names(), []string{tool.GetTicketInfo}) {
		t.Fatalf("unexpected calls %v", bridge.names())
	}
	if len(bridge.calls[0].Params) != 0 {
		t.Fatalf("ticket call must carry no parameters, got %v", bridge.calls[0].Params)
	}
	if !out.OK() || out.Record != (evidence.TicketRecord{TicketID: "T-1", AgentName: "Asha", Country: "IN"}) {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestTicketFailureCarriesMessage(t *testing.T) {
	bridge := &fakeBridge{results: map[string]tool.Result{
		tool.GetTicketInfo: tool.Failure(tool.FailureNotFound, "no ticket data found"),
	}}
	out := New(bridge, false, nullLogger()).Ticket(context.Background())
	if out.OK() || out.Message() != "no ticket data found" {
		t.Fatalf("unexpected outcome ok=%v msg=%q", out.OK(), out.Message())
	}
	if out.Record != (evidence.TicketRecord{}) {
		t.Fatalf("record must stay empty on failure, got %+v", out.Record)
	}
}

func TestDeepAnswerSequentialOrderAndParams(t *testing.T) {
	bridge := &fakeBridge{}
	outcomes := New(bridge, false, nullLogger()).DeepAnswer(context.Background(), "How does TCP work?")

	if !reflect.DeepEqual(bridge.names(), DeepAnswerTools) {
		t.Fatalf("expected calls in order %v, got %v", DeepAnswerTools, bridge.names())
	}
	for _, call := range bridge.calls {
		if !reflect.DeepEqual(call.Params, map[string]any{"query": "How does TCP work?"}) {
			t.Fatalf("unexpected params %v", call.Params)
		}
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
}

func TestDeepAnswerFaultIsolation(t *testing.T) {
	bridge := &fakeBridge{results: map[string]tool.Result{
		tool.DuckDuckGoSearch: tool.Failure(tool.FailureTransport, "Tool connection failed: refused"),
	}}
	outcomes := New(bridge, false, nullLogger()).DeepAnswer(context.Background(), "q")
	if !outcomes[0].Result.OK() || outcomes[1].Result.OK() || !outcomes[2].Result.OK() {
		t.Fatalf("unexpected statuses %v %v %v", outcomes[0].Result.OK(), outcomes[1].Result.OK(), outcomes[2].Result.OK())
	}
}

func TestDeepAnswerParallelPreservesOrder(t *testing.T) {
	bridge := &fakeBridge{
		results: map[string]tool.Result{
			tool.ResourceSearch:   tool.Success("resource"),
			tool.DuckDuckGoSearch: tool.Success("ddg"),
			tool.WebSearch:        tool.Success("web"),
		},
		delays: map[string]time.Duration{
			tool.ResourceSearch:   120 * time.Millisecond,
			tool.DuckDuckGoSearch: 60 * time.Millisecond,
		},
	}
	outcomes := New(bridge, true, nullLogger()).DeepAnswer(context.Background(), "q")

	if got := bridge.names(); got[0] != tool.WebSearch {
		t.Fatalf("expected fastest tool to finish first in parallel mode, got %v", got)
	}
	var names []string
	for _, o := range outcomes {
		names = append(names, o.Call.Name)
		payload, _ := o.Result.Payload()
		want := map[string]string{tool.ResourceSearch: "resource", tool.DuckDuckGoSearch: "ddg", tool.WebSearch: "web"}[o.Call.Name]
		if payload != want {
			t.Fatalf("outcome for %s carries %v", o.Call.Name, payload)
		}
	}
	if !reflect.DeepEqual(names, DeepAnswerTools) {
		t.Fatalf("outcomes must follow call order, got %v", names)
	}
}

func TestInvokeLogsStateTransitions(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	bridge := &fakeBridge{results: map[string]tool.Result{
		tool.GetTicketInfo: tool.Failure(tool.FailureApplication, "DB connection failed"),
	}}
	New(bridge, false, logger).Ticket(context.Background())

	var states []string
	for _, entry := range hook.AllEntries() {
		states = append(states, entry.Data["state"].(string))
	}
	if !reflect.DeepEqual(states, []string{"pending", "invoked", "failed"}) {
		t.Fatalf("unexpected transitions %v", states)
	}
	if hook.LastEntry().Data["error"] != "DB connection failed" {
		t.Fatalf("expected failure message in log, got %v", hook.LastEntry().Data)
	}
}

func TestInvokeRecordsMetrics(t *testing.T) {
	counter := toolCallsTotal.WithLabelValues(tool.WebSearch, "failure", string(tool.FailureBridge))
	before := testutil.ToFloat64(counter)

	bridge := &fakeBridge{results: map[string]tool.Result{
		tool.WebSearch: tool.Failure(tool.FailureBridge, "Tool execution error: web_search timed out after 30s"),
	}}
	New(bridge, false, nullLogger()).DeepAnswer(context.Background(), "q")

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected one failure recorded, got %v", got)
	}
}
