package main

import (
	"frameworks/api_lookout/internal/engine"
	"frameworks/api_lookout/internal/webui"
	"frameworks/api_lookout/lookout"
	"frameworks/pkg/config"
	"frameworks/pkg/logging"
	"frameworks/pkg/monitoring"
	"frameworks/pkg/server"
	"frameworks/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("lookout")

	// Load environment variables
	config.LoadEnv(logger)

	version.ComponentName = "lookout"
	logger.WithField("version", version.GetInfo().String()).Info("Starting Lookout (query orchestration service)")

	cfg := lookout.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("lookout", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("lookout", version.Version, version.GitCommit)

	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"MCP_URL":      cfg.MCPURL,
		"LLM_PROVIDER": cfg.LLMProvider,
		"LLM_MODEL":    cfg.LLMModel,
	}))
	healthChecker.AddCheck("tool_server", monitoring.EndpointHealthCheck("tool_server", cfg.MCPURL))

	var observers []engine.Observer
	closeEvents := func() {}
	if cfg.EventsEnabled() {
		publisher, producer, err := lookout.NewEventsPublisher(cfg, "lookout", logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to create Kafka producer - query events disabled")
		} else {
			// logrus Fatal exits without running defers, so every exit path
			// calls closeEvents itself.
			closeEvents = func() { _ = producer.Close() }
			observers = append(observers, publisher)
			healthChecker.AddCheck("kafka", monitoring.KafkaProducerHealthCheck(producer.GetClient()))
			logger.WithField("topic", cfg.EventsTopic).Info("Query events enabled")
		}
	} else {
		logger.Info("KAFKA_BROKERS not set - query events disabled")
	}

	eng, err := lookout.NewEngine(cfg, logger, observers...)
	if err != nil {
		closeEvents()
		logger.WithError(err).Fatal("Failed to build query engine")
	}

	// Setup router with unified monitoring (health/metrics) plus the UI
	router := server.SetupServiceRouter(logger, "lookout", healthChecker, metricsCollector)
	webui.NewHandler(eng, logger).Register(router)

	logger.WithFields(logging.Fields{
		"mcp_url":        cfg.MCPURL,
		"llm_provider":   cfg.LLMProvider,
		"llm_model":      cfg.LLMModel,
		"parallel_tools": cfg.ParallelTools,
		"tool_timeout":   cfg.ToolTimeout.String(),
	}).Info("Lookout configured")

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("lookout", "PORT", cfg.Port)
	err = server.Start(serverConfig, router, logger)
	closeEvents()
	if err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
