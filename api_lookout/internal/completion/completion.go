// Package completion sends one prompt to the language model and always comes
// back with text.
package completion

import (
	"context"
	"time"

	"frameworks/pkg/ctxkeys"
	"frameworks/pkg/llm"
	"frameworks/pkg/logging"
)

// ErrorPrefix marks a completion that is really a failure report.
const ErrorPrefix = "LLM Error: "

type Config struct {
	Provider string
	Model    string
	Timeout  time.Duration
}

type Invoker struct {
	provider llm.Provider
	cfg      Config
	logger   logging.Logger
}

func New(provider llm.Provider, cfg Config, logger logging.Logger) *Invoker {
	return &Invoker{provider: provider, cfg: cfg, logger: logger}
}

// Result is the completion text plus whether the call succeeded. On failure
// Text already carries ErrorPrefix.
type Result struct {
	Text string
	OK   bool
}

// Complete makes exactly one call. The stream is drained before returning;
// any failure, including a partial stream, yields "LLM Error: <message>".
func (i *Invoker) Complete(ctx context.Context, prompt string) string {
	return i.Run(ctx, prompt).Text
}

func (i *Invoker) Run(ctx context.Context, prompt string) Result {
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := i.call(ctx, prompt)
	elapsed := time.Since(start)

	llmDuration.WithLabelValues(i.cfg.Provider, i.cfg.Model).Observe(elapsed.Seconds())
	log := i.logger.WithFields(logging.Fields{
		"provider":    i.cfg.Provider,
		"model":       i.cfg.Model,
		"duration_ms": elapsed.Milliseconds(),
		"request_id":  ctxkeys.GetRequestID(ctx),
	})
	if err != nil {
		llmCallsTotal.WithLabelValues(i.cfg.Provider, i.cfg.Model, "error").Inc()
		log.WithError(err).Warn("LLM call failed")
		return Result{Text: ErrorPrefix + err.Error()}
	}
	llmCallsTotal.WithLabelValues(i.cfg.Provider, i.cfg.Model, "success").Inc()
	log.WithField("chars", len(text)).Info("LLM call finished")
	return Result{Text: text, OK: true}
}

func (i *Invoker) call(ctx context.Context, prompt string) (string, error) {
	stream, err := i.provider.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	return llm.ReadAll(stream)
}
