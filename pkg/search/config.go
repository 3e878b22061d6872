package search

import (
	"fmt"
	"strings"

	"frameworks/pkg/config"
)

const (
	ProviderTavily     = "tavily"
	ProviderBrave      = "brave"
	ProviderSearxng    = "searxng"
	ProviderDuckDuckGo = "duckduckgo"
)

// Config holds environment configuration for search providers.
type Config struct {
	Provider string
	APIKey   string
	APIURL   string
}

// LoadConfig loads search configuration from the environment. DuckDuckGo
// needs no key and is the default.
func LoadConfig() Config {
	return Config{
		Provider: strings.ToLower(config.GetEnv("SEARCH_PROVIDER", ProviderDuckDuckGo)),
		APIKey:   config.GetEnv("SEARCH_API_KEY", ""),
		APIURL:   config.GetEnv("SEARCH_API_URL", ""),
	}
}

// NewProvider creates a search provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderTavily:
		return NewTavilyProvider(cfg.APIKey, cfg.APIURL)
	case ProviderBrave:
		return NewBraveProvider(cfg.APIKey, cfg.APIURL)
	case ProviderSearxng:
		return NewSearxngProvider(cfg.APIURL)
	case ProviderDuckDuckGo:
		return NewDuckDuckGoProvider(cfg.APIURL), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}
