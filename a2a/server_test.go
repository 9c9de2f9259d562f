package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type echoExecutor struct{}

func (echoExecutor) Execute(ctx context.Context, text string) (string, error) {
	return "echo: " + text, nil
}

type failingExecutor struct{}

func (failingExecutor) Execute(ctx context.Context, text string) (string, error) {
	return "", errors.New("boom")
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	server, err := NewServer(newTestCard(), echoExecutor{}, DefaultServerConfig())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_ServesCard(t *testing.T) {
	srv := newEchoServer(t)

	resp, err := http.Get(srv.URL + WellKnownPath)
	if err != nil {
		t.Fatalf("GET card: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	var card AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if err := card.Validate(); err != nil {
		t.Errorf("served card invalid: %v", err)
	}
}

func TestServer_MessageRoundTrip(t *testing.T) {
	srv := newEchoServer(t)

	client := NewClient(nil, zap.NewNop())
	result, err := client.SendMessage(context.Background(), srv.URL, NewUserMessage("ping"))
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if result.Kind != ResultKindTask {
		t.Fatalf("expected task result, got %s", result.Kind)
	}
	if result.Task.Status.State != TaskStateCompleted {
		t.Errorf("expected completed task, got %s", result.Task.Status.State)
	}
	if got := result.Text(); got != "echo: ping" {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestServer_RejectsUnknownMethod(t *testing.T) {
	srv := newEchoServer(t)

	body := `{"jsonrpc": "2.0", "id": "1", "method": "message/stream", "params": {"message": {"role": "user", "parts": [{"kind": "text", "text": "hi"}], "messageId": "m"}}}`
	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpcResp.Error == nil || rpcResp.Error.Code != -32601 {
		t.Errorf("expected method-not-found error, got %+v", rpcResp.Error)
	}
}

func TestServer_RejectsEmptyMessage(t *testing.T) {
	srv := newEchoServer(t)

	body := `{"jsonrpc": "2.0", "id": "1", "method": "message/send", "params": {"message": {"role": "user", "parts": [], "messageId": "m"}}}`
	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpcResp.Error == nil || rpcResp.Error.Code != -32602 {
		t.Errorf("expected invalid-params error, got %+v", rpcResp.Error)
	}
}

func TestServer_ExecutorErrorBecomesRPCError(t *testing.T) {
	server, err := NewServer(newTestCard(), failingExecutor{}, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	srv := httptest.NewServer(server)
	defer srv.Close()

	client := NewClient(nil, zap.NewNop())
	_, err = client.SendMessage(context.Background(), srv.URL, NewUserMessage("hi"))
	if !errors.Is(err, ErrRPC) {
		t.Errorf("expected ErrRPC, got %v", err)
	}
}

func TestNewServer_RejectsInvalidCard(t *testing.T) {
	_, err := NewServer(&AgentCard{Name: "x"}, echoExecutor{}, nil)
	if !errors.Is(err, ErrMissingDescription) {
		t.Errorf("expected ErrMissingDescription, got %v", err)
	}
}
