// Package gemini implements the llm.Classifier backend against the Google
// Gemini generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/agentmesh/llm"
)

// Config holds configuration for the Gemini classifier.
type Config struct {
	// APIKey authenticates against the API. Empty means unavailable.
	APIKey string
	// Model is the model identifier.
	Model string
	// BaseURL overrides the API base URL.
	BaseURL string
	// Timeout bounds a single classification call.
	Timeout time.Duration
	// MaxOutputTokens bounds the completion length. Agent-name replies are
	// short; the default keeps cost and latency down.
	MaxOutputTokens int
	// Temperature controls sampling. Classification wants near-greedy.
	Temperature float32
	// RequestsPerSecond bounds the call rate; zero disables limiting.
	RequestsPerSecond float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:             "gemini-2.5-flash-lite",
		BaseURL:           "https://generativelanguage.googleapis.com",
		Timeout:           15 * time.Second,
		MaxOutputTokens:   100,
		Temperature:       0.1,
		RequestsPerSecond: 2,
	}
}

// Classifier calls the Gemini generateContent endpoint.
type Classifier struct {
	cfg     *Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a Gemini classifier. Returns llm.ErrUnavailable when no API
// key is configured, so callers can skip the classification stage.
func New(cfg *Config, logger *zap.Logger) (*Classifier, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, llm.ErrUnavailable
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = DefaultConfig().MaxOutputTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Classifier{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger.With(zap.String("component", "gemini_classifier")),
	}, nil
}

func (c *Classifier) Name() string { return "gemini" }

// Gemini request/response structures.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// Classify sends the prompt and returns the completion text.
func (c *Classifier) Classify(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	}
	body, err := json.Marshal(&reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrMsg(resp.Body)
		return "", fmt.Errorf("gemini: status=%d msg=%s", resp.StatusCode, msg)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini: invalid response: %w", err)
	}

	text := ""
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			text += part.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}

	c.logger.Debug("classification completed",
		zap.Duration("latency", time.Since(start)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// readErrMsg extracts the error message from a Gemini error body.
func readErrMsg(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		return string(body)
	}
	return parsed.Error.Message
}

var _ llm.Classifier = (*Classifier)(nil)
