package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"frameworks/pkg/config"
	"frameworks/pkg/llm"
	"frameworks/pkg/search"
)

const (
	DefaultMCPURL      = "http://127.0.0.1:8000/mcp"
	DefaultEventsTopic = "lookout.queries"
)

// Config stores environment configuration for the Lookout web service. It
// is loaded once in main and passed by value.
type Config struct {
	Port           string
	MCPURL         string
	ToolTimeout    time.Duration
	ParallelTools  bool
	TicketKeywords []string
	LLMProvider    string
	LLMModel       string
	LLMAPIKey      string
	LLMAPIURL      string
	LLMTemperature float64
	LLMMaxTokens   int
	LLMTimeout     time.Duration
	KafkaBrokers   []string
	KafkaClusterID string
	EventsTopic    string
}

// LoadConfig loads the Lookout configuration from environment variables.
func LoadConfig() Config {
	llmCfg := llm.LoadConfig()
	return Config{
		Port:           config.GetEnv("PORT", "18020"),
		MCPURL:         config.GetEnv("MCP_URL", DefaultMCPURL),
		ToolTimeout:    config.GetEnvDuration("LOOKOUT_TOOL_TIMEOUT", 30*time.Second),
		ParallelTools:  config.GetEnvBool("LOOKOUT_PARALLEL_TOOLS", false),
		TicketKeywords: config.GetEnvList("LOOKOUT_TICKET_KEYWORDS"),
		LLMProvider:    llmCfg.Provider,
		LLMModel:       llmCfg.Model,
		LLMAPIKey:      llmCfg.APIKey,
		LLMAPIURL:      llmCfg.APIURL,
		LLMTemperature: llmCfg.Temperature,
		LLMMaxTokens:   llmCfg.MaxTokens,
		LLMTimeout:     llmCfg.Timeout,
		KafkaBrokers:   config.GetEnvList("KAFKA_BROKERS"),
		KafkaClusterID: config.GetEnv("KAFKA_CLUSTER_ID", "local"),
		EventsTopic:    config.GetEnv("LOOKOUT_EVENTS_TOPIC", DefaultEventsTopic),
	}
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.LLMAPIKey == "" && c.LLMProvider != llm.ProviderOllama {
		errs = append(errs, errors.New("LLM_API_KEY (or GROQ_API_KEY) is required"))
	}
	if u, err := url.Parse(c.MCPURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("MCP_URL %q is not an absolute URL", c.MCPURL))
	}
	return errors.Join(errs...)
}

// LLMConfig returns the settings for pkg/llm.
func (c Config) LLMConfig() llm.Config {
	return llm.Config{
		Provider:    c.LLMProvider,
		Model:       c.LLMModel,
		APIKey:      c.LLMAPIKey,
		APIURL:      c.LLMAPIURL,
		MaxTokens:   c.LLMMaxTokens,
		Temperature: c.LLMTemperature,
		Timeout:     c.LLMTimeout,
	}
}

// EventsEnabled reports whether query events should be produced.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0 && strings.TrimSpace(c.EventsTopic) != ""
}

// ToolsConfig stores environment configuration for the lookout-tools MCP
// server.
type ToolsConfig struct {
	Port             string
	DatabaseURL      string
	ApplySchema      bool
	SeedDemo         bool
	Search           search.Config
	DuckDuckGoAPIURL string
	SearchLimit      int
}

func LoadToolsConfig() ToolsConfig {
	return ToolsConfig{
		Port:             config.GetEnv("TOOLS_PORT", "8000"),
		DatabaseURL:      config.GetEnv("DATABASE_URL", ""),
		ApplySchema:      config.GetEnvBool("TOOLS_APPLY_SCHEMA", true),
		SeedDemo:         config.GetEnvBool("TOOLS_SEED_DEMO", false),
		Search:           search.LoadConfig(),
		DuckDuckGoAPIURL: config.GetEnv("DUCKDUCKGO_API_URL", ""),
		SearchLimit:      config.GetEnvInt("TOOLS_SEARCH_LIMIT", 5),
	}
}
