// Package engine runs one query end to end: classify, gather evidence, ask
// the model, assemble the document.
package engine

import (
	"context"
	"time"

	"frameworks/api_lookout/internal/completion"
	"frameworks/api_lookout/internal/evidence"
	"frameworks/api_lookout/internal/intent"
	"frameworks/api_lookout/internal/invoker"
	"frameworks/api_lookout/internal/prompt"
	"frameworks/api_lookout/internal/response"
	"frameworks/api_lookout/internal/tool"
	"frameworks/pkg/ctxkeys"
	"frameworks/pkg/logging"
)

// LLM status values reported in Result.LLMStatus.
const (
	LLMSuccess = "success"
	LLMError   = "error"
	LLMSkipped = "skipped"
)

// Completer makes the single model call. completion.Invoker implements it.
type Completer interface {
	Run(ctx context.Context, prompt string) completion.Result
}

// Observer is told about every handled query. Implementations must not
// block for long; the events publisher is one.
type Observer interface {
	QueryHandled(ctx context.Context, query string, result Result)
}

type ToolStatus struct {
	Tool    string
	Status  string
	Kind    string
	Elapsed time.Duration
}

type Result struct {
	Mode      intent.Mode
	Document  *response.Document
	Tools     []ToolStatus
	LLMStatus string
	Elapsed   time.Duration
}

type Engine struct {
	classifier *intent.Classifier
	tools      *invoker.Invoker
	llm        Completer
	assembler  *response.Assembler
	observers  []Observer
	logger     logging.Logger
}

func New(classifier *intent.Classifier, tools *invoker.Invoker, llm Completer, logger logging.Logger, observers ...Observer) *Engine {
	return &Engine{
		classifier: classifier,
		tools:      tools,
		llm:        llm,
		assembler:  response.NewAssembler(),
		observers:  observers,
		logger:     logger,
	}
}

// Handle never fails: tool and model faults end up inside the document.
func (e *Engine) Handle(ctx context.Context, query string) Result {
	start := time.Now()
	mode := e.classifier.Classify(query)

	var result Result
	switch mode {
	case intent.ModeTicket:
		result = e.ticket(ctx, query)
	default:
		result = e.deepAnswer(ctx, query)
	}
	result.Mode = mode
	result.Elapsed = time.Since(start)

	outcome := "answered"
	if len(result.Document.Errors()) > 0 {
		outcome = "failed"
	}
	queriesTotal.WithLabelValues(string(mode), outcome).Inc()
	queryDuration.WithLabelValues(string(mode)).Observe(result.Elapsed.Seconds())

	e.logger.WithFields(logging.Fields{
		"mode":       mode,
		"outcome":    outcome,
		"llm_status": result.LLMStatus,
		"elapsed_ms": result.Elapsed.Milliseconds(),
		"request_id": ctxkeys.GetRequestID(ctx),
		"client_ip":  ctxkeys.GetClientIP(ctx),
	}).Info("Query handled")

	for _, o := range e.observers {
		o.QueryHandled(ctx, query, result)
	}
	return result
}

func (e *Engine) ticket(ctx context.Context, query string) Result {
	outcome := e.tools.Ticket(ctx)
	statuses := toolStatuses([]tool.Outcome{outcome.Outcome})
	if !outcome.OK() {
		return Result{
			Document:  e.assembler.TicketFailure(outcome.Message()),
			Tools:     statuses,
			LLMStatus: LLMSkipped,
		}
	}

	completed := e.llm.Run(ctx, prompt.Build(intent.ModeTicket, query, prompt.Evidence{Ticket: outcome.Record}))
	return Result{
		Document:  e.assembler.Ticket(outcome.Record, completed.Text),
		Tools:     statuses,
		LLMStatus: llmStatus(completed),
	}
}

func (e *Engine) deepAnswer(ctx context.Context, query string) Result {
	outcomes := e.tools.DeepAnswer(ctx, query)
	sections, hits := evidence.Aggregate(outcomes)

	completed := e.llm.Run(ctx, prompt.Build(intent.ModeDeepAnswer, query, prompt.Evidence{Tools: invoker.DeepAnswerTools, Hits: hits}))
	return Result{
		Document:  e.assembler.DeepAnswer(sections, completed.Text),
		Tools:     toolStatuses(outcomes),
		LLMStatus: llmStatus(completed),
	}
}

func toolStatuses(outcomes []tool.Outcome) []ToolStatus {
	out := make([]ToolStatus, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, ToolStatus{
			Tool:    o.Call.Name,
			Status:  o.Result.Status(),
			Kind:    string(o.Result.Kind()),
			Elapsed: o.Elapsed,
		})
	}
	return out
}

func llmStatus(r completion.Result) string {
	if r.OK {
		return LLMSuccess
	}
	return LLMError
}
