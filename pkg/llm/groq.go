package llm

import (
	"context"
)

const defaultGroqURL = "https://api.groq.com/openai/v1"

// GroqProvider targets Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	openai *OpenAIProvider
}

func NewGroqProvider(cfg Config) *GroqProvider {
	return &GroqProvider{
		openai: newOpenAICompatible(cfg, "groq", defaultGroqURL),
	}
}

func (p *GroqProvider) Complete(ctx context.Context, messages []Message) (Stream, error) {
	return p.openai.Complete(ctx, messages)
}
