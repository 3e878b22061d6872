// Package invoker decides which tools a query needs and runs them through the
// bridge.
package invoker

import (
	"context"
	"time"

	"frameworks/api_lookout/internal/evidence"
	"frameworks/api_lookout/internal/tool"
	"frameworks/pkg/ctxkeys"
	"frameworks/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// DeepAnswerTools are consulted for every technical question, in this order.
var DeepAnswerTools = []string{tool.ResourceSearch, tool.DuckDuckGoSearch, tool.WebSearch}

// Bridge runs a single call and never fails outright. bridge.Bridge
// implements it.
type Bridge interface {
	Invoke(ctx context.Context, call tool.Call) tool.Result
}

type Invoker struct {
	bridge   Bridge
	parallel bool
	logger   logging.Logger
}

// New returns an invoker. With parallel set, deep-answer calls run
// concurrently; results keep call order either way.
func New(bridge Bridge, parallel bool, logger logging.Logger) *Invoker {
	return &Invoker{bridge: bridge, parallel: parallel, logger: logger}
}

// TicketOutcome is the single get_ticket_info call plus its normalized
// record. Record is only meaningful when OK reports true.
type TicketOutcome struct {
	Outcome tool.Outcome
	Record  evidence.TicketRecord
}

func (o TicketOutcome) OK() bool        { return o.Outcome.Result.OK() }
func (o TicketOutcome) Message() string { return o.Outcome.Result.Message() }

// Ticket issues exactly one get_ticket_info call with no parameters.
func (i *Invoker) Ticket(ctx context.Context) TicketOutcome {
	outcome := i.invoke(ctx, tool.Call{Name: tool.GetTicketInfo, Params: map[string]any{}})
	result := TicketOutcome{Outcome: outcome}
	if payload, ok := outcome.Result.Payload(); ok {
		result.Record = evidence.NormalizeTicket(payload)
	}
	return result
}

// DeepAnswer calls every DeepAnswerTools entry with the original query text.
// A failing tool never affects the others.
func (i *Invoker) DeepAnswer(ctx context.Context, query string) []tool.Outcome {
	calls := make([]tool.Call, len(DeepAnswerTools))
	for idx, name := range DeepAnswerTools {
		calls[idx] = tool.Call{Name: name, Params: map[string]any{"query": query}}
	}

	outcomes := make([]tool.Outcome, len(calls))
	if !i.parallel {
		for idx, call := range calls {
			outcomes[idx] = i.invoke(ctx, call)
		}
		return outcomes
	}

	var g errgroup.Group
	for idx, call := range calls {
		g.Go(func() error {
			outcomes[idx] = i.invoke(ctx, call)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (i *Invoker) invoke(ctx context.Context, call tool.Call) tool.Outcome {
	log := i.logger.WithFields(logging.Fields{
		"tool":       call.Name,
		"request_id": ctxkeys.GetRequestID(ctx),
	})
	log.WithField("state", "pending").Debug("Tool call queued")

	start := time.Now()
	log.WithField("state", "invoked").Debug("Tool call started")
	result := i.bridge.Invoke(ctx, call)
	elapsed := time.Since(start)

	toolCallsTotal.WithLabelValues(call.Name, result.Status(), string(result.Kind())).Inc()
	toolCallDuration.WithLabelValues(call.Name).Observe(elapsed.Seconds())

	done := log.WithField("duration_ms", elapsed.Milliseconds())
	if result.OK() {
		done.WithField("state", "succeeded").Info("Tool call finished")
	} else {
		done.WithFields(logging.Fields{
			"state": "failed",
			"kind":  string(result.Kind()),
			"error": result.Message(),
		}).Warn("Tool call finished")
	}
	return tool.Outcome{Call: call, Result: result, Elapsed: elapsed}
}
