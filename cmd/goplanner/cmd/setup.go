package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dbsmedya/goplanner/internal/agent"
	"github.com/dbsmedya/goplanner/internal/config"
	"github.com/dbsmedya/goplanner/internal/database"
	"github.com/dbsmedya/goplanner/internal/llm"
	"github.com/dbsmedya/goplanner/internal/logger"
	"github.com/dbsmedya/goplanner/internal/schema"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

// loadConfig loads the config file and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.MaxTables, overrides.MaxResults, overrides.NoCache)

	return cfg, nil
}

// runtimeEnv holds the shared pieces every planning command needs.
type runtimeEnv struct {
	cfg     *config.Config
	logger  *logger.Logger
	manager *database.Manager
	engine  *agent.Engine
}

// setupRuntime connects to the database, loads the schema catalog, and
// assembles the engine. Callers must defer env.close().
func setupRuntime(ctx context.Context) (*runtimeEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	manager := database.NewManager(cfg)
	if err := manager.Connect(ctx); err != nil {
		return nil, err
	}

	catalog := schema.NewCatalog(schema.NewMySQLIntrospector(manager.DB), log)
	if err := catalog.Load(ctx); err != nil {
		manager.Close()
		return nil, fmt.Errorf("failed to load schema catalog: %w", err)
	}
	log.Infof("Schema catalog loaded: %d tables", catalog.Len())

	var fallback llm.Agent = llm.Disabled{}
	if cfg.LLM.Enabled {
		fallback = llm.NewClient(llm.Config{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		})
	}

	return &runtimeEnv{
		cfg:     cfg,
		logger:  log,
		manager: manager,
		engine:  agent.New(cfg, catalog, manager.DB, fallback, log),
	}, nil
}

func (e *runtimeEnv) close() {
	if e.manager != nil {
		e.manager.Close()
	}
	if e.logger != nil {
		e.logger.Sync()
	}
}
