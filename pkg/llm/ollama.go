package llm

import (
	"context"
)

type OllamaProvider struct {
	openai *OpenAIProvider
}

func NewOllamaProvider(cfg Config) *OllamaProvider {
	return &OllamaProvider{
		openai: newOpenAICompatible(cfg, "ollama", "http://localhost:11434/v1"),
	}
}

func (p *OllamaProvider) Complete(ctx context.Context, messages []Message) (Stream, error) {
	return p.openai.Complete(ctx, messages)
}
