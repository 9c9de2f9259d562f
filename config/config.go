// Package config loads the agentmesh configuration from defaults, an
// optional YAML file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete agentmesh configuration.
type Config struct {
	// Registry configures where agent endpoints come from.
	Registry RegistryConfig `yaml:"registry" env:"REGISTRY"`

	// Discovery configures the capability discovery pass.
	Discovery DiscoveryConfig `yaml:"discovery" env:"DISCOVERY"`

	// LLM configures the routing classifier.
	LLM LLMConfig `yaml:"llm" env:"LLM"`

	// Server configures agent-serving processes.
	Server ServerConfig `yaml:"server" env:"SERVER"`

	// Log configures logging.
	Log LogConfig `yaml:"log" env:"LOG"`
}

// RegistryConfig configures the agent registry source.
type RegistryConfig struct {
	// Path to a JSON file mapping agent names to base URLs.
	Path string `yaml:"path" env:"PATH"`
	// Agents is an inline name→URL mapping merged over the file contents.
	Agents map[string]string `yaml:"agents" env:"-"`
}

// DiscoveryConfig configures the discovery pass.
type DiscoveryConfig struct {
	// ConnectTimeout bounds TCP connection establishment per agent.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT"`
	// RequestTimeout bounds one card fetch or message exchange.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	// ScanHost is the host probed during the port scan. Empty disables it.
	ScanHost string `yaml:"scan_host" env:"SCAN_HOST"`
	// ScanPorts are the ports probed on ScanHost.
	ScanPorts []int `yaml:"scan_ports" env:"-"`
}

// LLMConfig configures the classification provider.
type LLMConfig struct {
	// Provider selects the classifier backend. Only "gemini" is supported.
	Provider string `yaml:"provider" env:"PROVIDER"`
	// APIKey authenticates against the provider. Empty disables
	// classification and the router falls through to keyword matching.
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// Model is the provider model name.
	Model string `yaml:"model" env:"MODEL"`
	// BaseURL overrides the provider endpoint.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Timeout bounds one classification call.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// ServerConfig configures an agent-serving process.
type ServerConfig struct {
	// Host the agent binds to.
	Host string `yaml:"host" env:"HOST"`
	// Port the agent binds to.
	Port int `yaml:"port" env:"PORT"`
	// MetricsPort serves Prometheus metrics. Zero disables the endpoint.
	MetricsPort int `yaml:"metrics_port" env:"METRICS_PORT"`
	// RequestTimeout bounds one inbound message execution.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format is json or console.
	Format string `yaml:"format" env:"FORMAT"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Path: "registry.json",
		},
		Discovery: DiscoveryConfig{
			ConnectTimeout: 2 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash-lite",
			Timeout:  15 * time.Second,
		},
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8000,
			RequestTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for values no component can run with.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "invalid server port")
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		errs = append(errs, "invalid metrics port")
	}
	if c.Discovery.ConnectTimeout <= 0 {
		errs = append(errs, "connect_timeout must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
