// Package lookout assembles the query engine from configuration. The service
// binary and the CLI both start here.
package lookout

import (
	"fmt"

	"frameworks/api_lookout/internal/bridge"
	"frameworks/api_lookout/internal/completion"
	"frameworks/api_lookout/internal/config"
	"frameworks/api_lookout/internal/engine"
	"frameworks/api_lookout/internal/events"
	"frameworks/api_lookout/internal/intent"
	"frameworks/api_lookout/internal/invoker"
	"frameworks/api_lookout/internal/response"
	"frameworks/api_lookout/internal/toolclient"
	"frameworks/pkg/kafka"
	"frameworks/pkg/llm"
	"frameworks/pkg/logging"
	"frameworks/pkg/version"

	"github.com/charmbracelet/lipgloss"
)

// LoadConfig reads the service configuration from the environment.
func LoadConfig() config.Config {
	return config.LoadConfig()
}

// NewEngine wires classifier, tool client, bridge, invoker and LLM invoker.
func NewEngine(cfg config.Config, logger logging.Logger, observers ...engine.Observer) (*engine.Engine, error) {
	provider, err := llm.NewProvider(cfg.LLMConfig())
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	client, err := toolclient.New(toolclient.Config{
		Endpoint: cfg.MCPURL,
		Version:  version.Version,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("tool client: %w", err)
	}

	tools := invoker.New(bridge.New(client, cfg.ToolTimeout, logger), cfg.ParallelTools, logger)
	completer := completion.New(provider, completion.Config{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		Timeout:  cfg.LLMTimeout,
	}, logger)

	return engine.New(intent.NewClassifier(cfg.TicketKeywords), tools, completer, logger, observers...), nil
}

// NewEventsPublisher connects the Kafka producer used for query events. The
// caller owns the producer and must close it.
func NewEventsPublisher(cfg config.Config, clientID string, logger logging.Logger) (*events.Publisher, *kafka.KafkaProducer, error) {
	producer, err := kafka.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaClusterID, clientID, logger)
	if err != nil {
		return nil, nil, err
	}
	return events.NewPublisher(producer, cfg.EventsTopic, logger), producer, nil
}

// RenderHTML renders a document the way the web page shows it.
func RenderHTML(doc *response.Document) (string, error) {
	out, err := response.HTML(doc)
	return string(out), err
}

// RenderText renders a document for a terminal, with colors when stdout
// supports them.
func RenderText(doc *response.Document) string {
	return response.NewTextRenderer(lipgloss.DefaultRenderer()).Render(doc)
}
