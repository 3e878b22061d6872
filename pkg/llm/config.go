package llm

import (
	"fmt"
	"strings"
	"time"

	"frameworks/pkg/config"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds the backend address and the fixed decoding parameters sent
// with every request.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	APIURL      string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// LoadConfig reads LLM_* variables. GROQ_API_KEY is honoured when
// LLM_API_KEY is unset.
func LoadConfig() Config {
	apiKey := config.FirstEnv("LLM_API_KEY", "GROQ_API_KEY")
	return Config{
		Provider:    strings.ToLower(config.GetEnv("LLM_PROVIDER", ProviderGroq)),
		Model:       config.GetEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		APIKey:      apiKey,
		APIURL:      config.GetEnv("LLM_API_URL", ""),
		MaxTokens:   config.GetEnvInt("LLM_MAX_TOKENS", 2000),
		Temperature: config.GetEnvFloat("LLM_TEMPERATURE", 0.2),
		Timeout:     config.GetEnvDuration("LLM_TIMEOUT", 60*time.Second),
	}
}

func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGroq:
		return NewGroqProvider(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case ProviderOllama:
		return NewOllamaProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
