package main

import (
	"context"
	"net/http"

	lookoutconfig "frameworks/api_lookout/internal/config"
	"frameworks/api_lookout/internal/toolserver"
	"frameworks/pkg/config"
	"frameworks/pkg/database"
	lookoutsql "frameworks/pkg/database/sql"
	"frameworks/pkg/logging"
	"frameworks/pkg/monitoring"
	"frameworks/pkg/search"
	"frameworks/pkg/server"
	"frameworks/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	logger := logging.NewLoggerWithService("lookout-tools")
	config.LoadEnv(logger)

	version.ComponentName = "lookout-tools"
	logger.WithField("version", version.GetInfo().String()).Info("Starting Lookout tool server")

	cfg := lookoutconfig.LoadToolsConfig()
	ctx := context.Background()

	// Connect to database
	dbConfig := database.DefaultConfig()
	dbConfig.URL = cfg.DatabaseURL
	db, err := database.Connect(ctx, dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()

	if cfg.ApplySchema {
		if err := database.ApplySQL(ctx, db, lookoutsql.Content, "schema", logger); err != nil {
			logger.WithError(err).Fatal("Failed to apply schema")
		}
	}
	if cfg.SeedDemo {
		if err := database.ApplySQL(ctx, db, lookoutsql.Content, "seeds/demo", logger); err != nil {
			logger.WithError(err).Fatal("Failed to apply demo seeds")
		}
	}

	webSearch, err := search.NewProvider(cfg.Search)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create web search provider")
	}

	healthChecker := monitoring.NewHealthChecker("lookout-tools", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("lookout-tools", version.Version, version.GitCommit)
	healthChecker.AddCheck("database", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL":    cfg.DatabaseURL,
		"SEARCH_PROVIDER": cfg.Search.Provider,
	}))

	store := toolserver.NewStore(db)
	mcpServer := toolserver.NewServer(toolserver.Config{
		Resources:   store,
		Tickets:     store,
		WebSearch:   webSearch,
		DuckDuckGo:  search.NewDuckDuckGoProvider(cfg.DuckDuckGoAPIURL),
		Logger:      logger,
		SearchLimit: cfg.SearchLimit,
	})
	mcpHandler := mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return mcpServer },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)

	router := server.SetupServiceRouter(logger, "lookout-tools", healthChecker, metricsCollector)
	router.Any("/mcp", gin.WrapH(mcpHandler))
	router.Any("/mcp/*path", gin.WrapH(mcpHandler))

	logger.WithFields(logging.Fields{
		"search_provider": cfg.Search.Provider,
		"search_limit":    cfg.SearchLimit,
	}).Info("Tool server configured")

	serverConfig := server.DefaultConfig("lookout-tools", "TOOLS_PORT", cfg.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
