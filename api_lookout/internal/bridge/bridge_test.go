package bridge

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"frameworks/api_lookout/internal/tool"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type callerFunc func(ctx context.Context, name string, params map[string]any) tool.Result

func (f callerFunc) CallTool(ctx context.Context, name string, params map[string]any) tool.Result {
	return f(ctx, name, params)
}

func TestInvokePassesThroughResult(t *testing.T) {
	var gotName string
	var gotParams map[string]any
	b := New(callerFunc(func(_ context.Context, name string, params map[string]any) tool.Result {
		gotName, gotParams = name, params
		return tool.Success(map[string]any{"results": []any{}})
	}), time.Second, nil)

	result := b.Invoke(context.Background(), tool.Call{Name: tool.WebSearch, Params: map[string]any{"query": "q"}})
	if !result.OK() {
		t.Fatalf("expected success, got %q", result.Message())
	}
	if gotName != tool.WebSearch || gotParams["query"] != "q" {
		t.Fatalf("unexpected call %s %v", gotName, gotParams)
	}
}

func TestInvokePassesThroughFailure(t *testing.T) {
	b := New(callerFunc(func(context.Context, string, map[string]any) tool.Result {
		return tool.Failure(tool.FailureTransport, "Tool connection failed: refused")
	}), time.Second, nil)

	result := b.Invoke(context.Background(), tool.Call{Name: tool.GetTicketInfo})
	if result.OK() || result.Kind() != tool.FailureTransport || result.Message() != "Tool connection failed: refused" {
		t.Fatalf("unexpected result %q %q", result.Kind(), result.Message())
	}
}

func TestInvokeRecoversPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	b := New(callerFunc(func(context.Context, string, map[string]any) tool.Result {
		panic("event loop exploded")
	}), time.Second, logger)

	result := b.Invoke(context.Background(), tool.Call{Name: tool.ResourceSearch})
	if result.OK() || result.Kind() != tool.FailureBridge {
		t.Fatalf("expected bridge failure, got ok=%v kind=%q", result.OK(), result.Kind())
	}
	if !strings.Contains(result.Message(), "event loop exploded") {
		t.Fatalf("expected panic value in message, got %q", result.Message())
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatal("expected panic to be logged")
	}
}

func TestInvokeTimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	var sawCancel atomic.Bool
	b := New(callerFunc(func(ctx context.Context, _ string, _ map[string]any) tool.Result {
		select {
		case <-ctx.Done():
			sawCancel.Store(true)
		case <-release:
		}
		return tool.Success("late")
	}), 50*time.Millisecond, nil)

	start := time.Now()
	result := b.Invoke(context.Background(), tool.Call{Name: tool.DuckDuckGoSearch})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Invoke blocked for %v", elapsed)
	}
	if result.OK() || result.Kind() != tool.FailureBridge {
		t.Fatalf("expected bridge failure, got ok=%v kind=%q", result.OK(), result.Kind())
	}
	if !strings.Contains(result.Message(), "timed out") {
		t.Fatalf("unexpected message %q", result.Message())
	}
}

func TestInvokeParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(callerFunc(func(ctx context.Context, _ string, _ map[string]any) tool.Result {
		<-ctx.Done()
		return tool.Failure(tool.FailureTransport, "should not be seen")
	}), time.Second, nil)

	result := b.Invoke(ctx, tool.Call{Name: tool.WebSearch})
	if result.OK() {
		t.Fatal("expected failure for cancelled context")
	}
}

func TestInvokeConcurrentUse(t *testing.T) {
	var calls atomic.Int32
	b := New(callerFunc(func(_ context.Context, name string, _ map[string]any) tool.Result {
		calls.Add(1)
		return tool.Success(name)
	}), time.Second, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r := b.Invoke(context.Background(), tool.Call{Name: tool.WebSearch}); !r.OK() {
				t.Errorf("unexpected failure %q", r.Message())
			}
		}()
	}
	wg.Wait()
	if calls.Load() != 20 {
		t.Fatalf("expected 20 calls, got %d", calls.Load())
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	if b := New(nil, 0, nil); b.Timeout() != DefaultTimeout {
		t.Fatalf("expected default timeout, got %v", b.Timeout())
	}
}
