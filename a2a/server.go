package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Executor produces a reply for one incoming query. Implementations are the
// agents themselves; the server owns the task envelope around them.
type Executor interface {
	// Execute handles a single user utterance and returns the reply text.
	Execute(ctx context.Context, text string) (string, error)
}

// ServerConfig holds configuration for the A2A server.
type ServerConfig struct {
	// RequestTimeout bounds the execution of a single message.
	RequestTimeout time.Duration
	// Logger is the logger instance.
	Logger *zap.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		RequestTimeout: 30 * time.Second,
		Logger:         zap.NewNop(),
	}
}

// Server serves one agent over the A2A protocol: the card at the well-known
// path and message/send at the root.
type Server struct {
	card     *AgentCard
	executor Executor
	config   *ServerConfig
	logger   *zap.Logger
	mux      *http.ServeMux
}

// NewServer creates a Server for the given card and executor.
func NewServer(card *AgentCard, executor Executor, config *ServerConfig) (*Server, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	if executor == nil {
		return nil, fmt.Errorf("a2a: nil executor")
	}
	if config == nil {
		config = DefaultServerConfig()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	s := &Server{
		card:     card,
		executor: executor,
		config:   config,
		logger:   config.Logger.With(zap.String("component", "a2a_server"), zap.String("agent", card.Name)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(WellKnownPath, s.handleCard)
	mux.HandleFunc("/", s.handleMessage)
	s.mux = mux
	return s, nil
}

// Card returns the agent card served by this server.
func (s *Server) Card() *AgentCard { return s.card }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.card); err != nil {
		s.logger.Error("failed to encode agent card", zap.Error(err))
	}
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var req sendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeRPCError(w, "", -32700, "parse error")
		return
	}
	if req.Method != "message/send" {
		s.writeRPCError(w, req.ID, -32601, fmt.Sprintf("method not found: %s", req.Method))
		return
	}
	if err := req.Params.Message.Validate(); err != nil {
		s.writeRPCError(w, req.ID, -32602, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	text := req.Params.Message.Text()
	s.logger.Info("message received", zap.String("message_id", req.Params.Message.MessageID))

	reply, err := s.executor.Execute(ctx, text)
	if err != nil {
		s.logger.Warn("executor failed", zap.Error(err))
		s.writeRPCError(w, req.ID, -32000, err.Error())
		return
	}

	task := NewCompletedTask(req.Params.Message.MessageID, reply)
	result, err := json.Marshal(task)
	if err != nil {
		s.writeRPCError(w, req.ID, -32603, "internal error")
		return
	}

	resp := sendResponse{JSONRPC: "2.0", ID: req.ID, Result: result}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeRPCError(w http.ResponseWriter, id string, code int, message string) {
	resp := sendResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		s.logger.Error("failed to encode rpc error", zap.Error(err))
	}
}
