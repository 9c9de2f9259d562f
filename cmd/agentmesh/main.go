// Command agentmesh runs the interactive orchestrator: it discovers the
// agents named in the registry, then answers queries from stdin by routing
// each one to the best-matching agent.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/agentmesh/a2a"
	"github.com/BaSui01/agentmesh/config"
	"github.com/BaSui01/agentmesh/internal/metrics"
	"github.com/BaSui01/agentmesh/llm"
	"github.com/BaSui01/agentmesh/llm/gemini"
	"github.com/BaSui01/agentmesh/orchestrator"
	"github.com/BaSui01/agentmesh/registry"
	"github.com/BaSui01/agentmesh/router"
)

var Version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	registryPath := flag.String("registry", "", "Path to registry file (JSON), overrides config")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("agentmesh %s\n", Version)
		return
	}

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *registryPath != "" {
		cfg.Registry.Path = *registryPath
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("agentmesh failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entries, err := loadRegistry(cfg.Registry)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("agentmesh", nil)

	clientConfig := a2a.DefaultClientConfig()
	clientConfig.ConnectTimeout = cfg.Discovery.ConnectTimeout
	clientConfig.RequestTimeout = cfg.Discovery.RequestTimeout
	client := a2a.NewClient(clientConfig, logger)

	classifier := buildClassifier(cfg.LLM, logger)
	if classifier == nil {
		logger.Warn("no classifier configured, routing falls back to keyword matching")
	}

	orch := orchestrator.New(orchestrator.Options{
		Registry:   entries,
		Discoverer: registry.NewDiscoverer(client, collector, logger),
		Matcher:    router.NewMatcher(classifier, collector, logger),
		Dispatcher: orchestrator.NewDispatcher(client, collector, logger),
		ScanHost:   cfg.Discovery.ScanHost,
		ScanPorts:  cfg.Discovery.ScanPorts,
		Logger:     logger,
	})

	count := orch.Discover(ctx)
	fmt.Printf("Discovered %d agents. Type a query, 'refresh' to re-discover, or 'exit' to quit.\n\n", count)

	if err := orch.RunLoop(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// loadRegistry merges the registry file with the inline agents from the
// config. Inline entries win on name collisions. A broken registry file is
// fatal unless inline agents cover for it.
func loadRegistry(cfg config.RegistryConfig) (map[string]string, error) {
	entries := map[string]string{}
	var loadErr error
	if cfg.Path != "" {
		loaded, err := registry.LoadRegistry(cfg.Path)
		if err != nil {
			loadErr = err
		} else {
			entries = loaded
		}
	}
	for name, url := range cfg.Agents {
		entries[name] = url
	}
	if len(entries) == 0 {
		if loadErr != nil {
			return nil, loadErr
		}
		return nil, fmt.Errorf("%w: no agents configured", registry.ErrConfiguration)
	}
	return entries, nil
}

// buildClassifier wires up the configured LLM provider. A missing API key
// is not an error: the router has non-LLM fallbacks.
func buildClassifier(cfg config.LLMConfig, logger *zap.Logger) llm.Classifier {
	switch cfg.Provider {
	case "", "gemini":
		geminiConfig := gemini.DefaultConfig()
		geminiConfig.APIKey = cfg.APIKey
		if geminiConfig.APIKey == "" {
			geminiConfig.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.Model != "" {
			geminiConfig.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			geminiConfig.BaseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			geminiConfig.Timeout = cfg.Timeout
		}
		classifier, err := gemini.New(geminiConfig, logger)
		if err != nil {
			return nil
		}
		return classifier
	default:
		logger.Warn("unknown llm provider", zap.String("provider", cfg.Provider))
		return nil
	}
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	encoding := "json"
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoding = "console"
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      encoding == "console",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
