package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestCard() *AgentCard {
	card := NewAgentCard("Test Agent", "An agent for tests.", "http://localhost:9999/", "1.0.0")
	card.AddSkill(AgentSkill{
		ID:          "test",
		Name:        "Test",
		Description: "Does test things.",
		Tags:        []string{"test"},
	})
	return card
}

func TestClient_ResolveCard(t *testing.T) {
	card := newTestCard()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != WellKnownPath {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(card)
	}))
	defer srv.Close()

	client := NewClient(nil, zap.NewNop())
	resolved, err := client.ResolveCard(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ResolveCard failed: %v", err)
	}
	if resolved.Name != "Test Agent" {
		t.Errorf("unexpected name: %q", resolved.Name)
	}
	if len(resolved.Skills) != 1 {
		t.Errorf("expected 1 skill, got %d", len(resolved.Skills))
	}
}

func TestClient_ResolveCard_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(nil, zap.NewNop())
	_, err := client.ResolveCard(context.Background(), srv.URL)
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestClient_ResolveCard_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a card</html>"))
	}))
	defer srv.Close()

	client := NewClient(nil, zap.NewNop())
	_, err := client.ResolveCard(context.Background(), srv.URL)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestClient_ResolveCard_IncompleteCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "No URL Agent", "description": "missing url"}`))
	}))
	defer srv.Close()

	client := NewClient(nil, zap.NewNop())
	_, err := client.ResolveCard(context.Background(), srv.URL)
	if !errors.Is(err, ErrMissingURL) {
		t.Errorf("expected ErrMissingURL, got %v", err)
	}
}

func TestClient_SendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Method != "message/send" {
			t.Errorf("unexpected method: %q", req.Method)
		}
		if req.Params.Message.Text() != "What time is it?" {
			t.Errorf("unexpected message text: %q", req.Params.Message.Text())
		}

		task := NewCompletedTask(req.Params.Message.MessageID, "It is noon.")
		result, _ := json.Marshal(task)
		json.NewEncoder(w).Encode(sendResponse{JSONRPC: "2.0", ID: req.ID, Result: result})
	}))
	defer srv.Close()

	client := NewClient(nil, zap.NewNop())
	result, err := client.SendMessage(context.Background(), srv.URL, NewUserMessage("What time is it?"))
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if result.Kind != ResultKindTask {
		t.Errorf("expected task result, got %s", result.Kind)
	}
	if got := result.Text(); got != "It is noon." {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestClient_SendMessage_RPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendResponse{
			JSONRPC: "2.0",
			ID:      "1",
			Error:   &rpcError{Code: -32601, Message: "method not found"},
		})
	}))
	defer srv.Close()

	client := NewClient(nil, zap.NewNop())
	_, err := client.SendMessage(context.Background(), srv.URL, NewUserMessage("hi"))
	if !errors.Is(err, ErrRPC) {
		t.Errorf("expected ErrRPC, got %v", err)
	}
}

func TestClient_SendMessage_EmptyMessage(t *testing.T) {
	client := NewClient(nil, zap.NewNop())
	_, err := client.SendMessage(context.Background(), "http://localhost:9999", &Message{Role: RoleUser})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
}
