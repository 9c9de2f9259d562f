package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientConfig holds configuration for the A2A client.
type ClientConfig struct {
	// ConnectTimeout bounds connection establishment. A short value keeps an
	// unreachable agent from stalling a discovery batch.
	ConnectTimeout time.Duration
	// RequestTimeout bounds the whole request including reading the body.
	RequestTimeout time.Duration
	// Headers are extra headers added to every request.
	Headers map[string]string
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ConnectTimeout: 2 * time.Second,
		RequestTimeout: 30 * time.Second,
		Headers:        make(map[string]string),
	}
}

// Client is an HTTP client for the A2A protocol: card resolution and
// non-streaming message dispatch.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Client with the given configuration.
func NewClient(config *ClientConfig, logger *zap.Logger) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: config.ConnectTimeout,
		}).DialContext,
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.RequestTimeout,
			Transport: transport,
		},
		logger: logger.With(zap.String("component", "a2a_client")),
	}
}

// ResolveCard fetches the agent card from the well-known discovery path on
// the given base URL.
func (c *Client) ResolveCard(ctx context.Context, baseURL string) (*AgentCard, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: empty url", ErrRemoteUnavailable)
	}

	cardURL := strings.TrimRight(baseURL, "/") + WellKnownPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var card AgentCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug("resolved agent card",
		zap.String("url", baseURL),
		zap.String("agent", card.Name),
	)
	return &card, nil
}

// SendMessage posts the message to the agent's message endpoint and returns
// the decoded result. The reply shape varies by agent; callers normalize it
// through SendResult.Text.
func (c *Client) SendMessage(ctx context.Context, baseURL string, msg *Message) (*SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	envelope := sendRequest{
		JSONRPC: "2.0",
		ID:      uuid.New().String(),
		Method:  "message/send",
		Params:  sendParams{Message: msg},
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrRemoteUnavailable, resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var rpcResp sendResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("%w: code %d: %s", ErrRPC, rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if len(rpcResp.Result) == 0 {
		return nil, fmt.Errorf("%w: missing result", ErrInvalidResponse)
	}

	return ParseResult(rpcResp.Result), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
}
