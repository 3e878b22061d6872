// Package bridge runs one blocking tool call to completion under its own
// deadline and turns every way it can go wrong into a tool.Result.
package bridge

import (
	"context"
	"fmt"
	"time"

	"frameworks/api_lookout/internal/tool"
	"frameworks/pkg/logging"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
)

const DefaultTimeout = 30 * time.Second

// Caller performs one remote tool call. toolclient.Client implements it.
type Caller interface {
	CallTool(ctx context.Context, name string, params map[string]any) tool.Result
}

// Bridge is immutable after construction and safe for concurrent use.
type Bridge struct {
	caller  Caller
	timeout time.Duration
	logger  logging.Logger
}

func New(caller Caller, callTimeout time.Duration, logger logging.Logger) *Bridge {
	if callTimeout <= 0 {
		callTimeout = DefaultTimeout
	}
	return &Bridge{caller: caller, timeout: callTimeout, logger: logger}
}

func (b *Bridge) Timeout() time.Duration { return b.timeout }

// Invoke never returns an error and never panics. The call runs on its own
// goroutine; if the deadline passes first, Invoke returns a failure and the
// abandoned goroutine finishes against a cancelled context.
func (b *Bridge) Invoke(ctx context.Context, call tool.Call) tool.Result {
	policy := timeout.New[tool.Result](b.timeout)
	result, err := failsafe.With(policy).WithContext(ctx).GetWithExecution(func(exec failsafe.Execution[tool.Result]) (tool.Result, error) {
		return b.run(exec.Context(), call)
	})
	if err == nil {
		return result
	}

	var failure tool.Result
	if ctx.Err() != nil {
		failure = tool.Failure(tool.FailureBridge, fmt.Sprintf("Tool execution error: %s cancelled: %v", call.Name, ctx.Err()))
	} else {
		failure = tool.Failure(tool.FailureBridge, fmt.Sprintf("Tool execution error: %s timed out after %s", call.Name, b.timeout))
	}
	if b.logger != nil {
		b.logger.WithError(err).WithFields(logging.Fields{
			"tool":    call.Name,
			"timeout": b.timeout.String(),
		}).Warn("Tool call abandoned")
	}
	return failure
}

func (b *Bridge) run(ctx context.Context, call tool.Call) (tool.Result, error) {
	done := make(chan tool.Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if b.logger != nil {
					b.logger.WithField("tool", call.Name).WithField("panic", r).Error("Tool call panicked")
				}
				done <- tool.Failure(tool.FailureBridge, fmt.Sprintf("Tool execution error: %v", r))
			}
		}()
		done <- b.caller.CallTool(ctx, call.Name, call.Params)
	}()

	select {
	case result := <-done:
		return result, nil
	case <-ctx.Done():
		return tool.Result{}, ctx.Err()
	}
}
