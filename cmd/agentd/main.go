// Command agentd serves one of the built-in agents over the A2A protocol:
// the agent card at /.well-known/agent.json and message/send at the root.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/agentmesh/a2a"
	"github.com/BaSui01/agentmesh/agents/greeting"
	"github.com/BaSui01/agentmesh/agents/scientist"
	"github.com/BaSui01/agentmesh/agents/telltime"
	"github.com/BaSui01/agentmesh/config"
)

func main() {
	agentName := flag.String("agent", "telltime", "Agent to serve: telltime, greeting, scientist")
	configPath := flag.String("config", "", "Path to config file (YAML)")
	host := flag.String("host", "", "Bind host, overrides config")
	port := flag.Int("port", 0, "Bind port, overrides config")
	flag.Parse()

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	if err := run(cfg, *agentName, logger); err != nil {
		logger.Error("agentd failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, agentName string, logger *zap.Logger) error {
	baseURL := fmt.Sprintf("http://%s:%d/", cfg.Server.Host, cfg.Server.Port)

	card, executor, err := buildAgent(agentName, baseURL, logger)
	if err != nil {
		return err
	}

	serverConfig := a2a.DefaultServerConfig()
	serverConfig.RequestTimeout = cfg.Server.RequestTimeout
	serverConfig.Logger = logger
	server, err := a2a.NewServer(card, executor, serverConfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("agent listening",
			zap.String("agent", card.Name),
			zap.String("addr", addr),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	var metricsServer *http.Server
	if cfg.Server.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
			Handler: mux,
		}
		go func() {
			logger.Info("metrics listening", zap.String("addr", metricsServer.Addr))
			errCh <- metricsServer.ListenAndServe()
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("agent stopped", zap.String("agent", card.Name))
	return nil
}

// buildAgent resolves a built-in agent by name.
func buildAgent(name, baseURL string, logger *zap.Logger) (*a2a.AgentCard, a2a.Executor, error) {
	switch name {
	case "telltime":
		return telltime.Card(baseURL), telltime.New(), nil
	case "greeting":
		return greeting.Card(baseURL), greeting.New(), nil
	case "scientist":
		scientistConfig := scientist.DefaultConfig()
		scientistConfig.Logger = logger
		return scientist.Card(baseURL), scientist.New(scientistConfig), nil
	default:
		return nil, nil, fmt.Errorf("unknown agent %q (want telltime, greeting, or scientist)", name)
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
