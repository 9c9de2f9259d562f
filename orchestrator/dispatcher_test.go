package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/BaSui01/agentmesh/a2a"
	"github.com/BaSui01/agentmesh/registry"
)

// newAgentServer serves a minimal message/send endpoint replying with a
// completed task wrapping reply.
func newAgentServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     string `json:"id"`
			Params struct {
				Message a2a.Message `json:"message"`
			} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		task := a2a.NewCompletedTask(req.Params.Message.MessageID, reply)
		result, _ := json.Marshal(task)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": json.RawMessage(result)}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func storeWithAgent(t *testing.T, name, endpoint string) *registry.Store {
	t.Helper()
	store := registry.NewStore()
	if err := store.Add(&registry.AgentDescriptor{
		Name:        name,
		Endpoint:    endpoint,
		Description: "Test agent.",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return store
}

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(a2a.NewClient(nil, zap.NewNop()), nil, zap.NewNop())
}

func TestDispatcher_Send(t *testing.T) {
	srv := newAgentServer(t, "It is noon.")
	store := storeWithAgent(t, "time_agent", srv.URL)

	got := newTestDispatcher().Send(context.Background(), store, "time_agent", "What time is it?")
	if got != "It is noon." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestDispatcher_UnknownAgent(t *testing.T) {
	store := registry.NewStore()

	got := newTestDispatcher().Send(context.Background(), store, "ghost_agent", "hello")
	if got != "Agent ghost_agent is not available." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestDispatcher_TransportFailureBecomesText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	store := storeWithAgent(t, "down_agent", srv.URL)

	got := newTestDispatcher().Send(context.Background(), store, "down_agent", "hello")
	if !strings.HasPrefix(got, "Error communicating with down_agent:") {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestDispatcher_RPCErrorBecomesText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc": "2.0", "id": "1", "error": {"code": -32000, "message": "agent exploded"}}`))
	}))
	t.Cleanup(srv.Close)
	store := storeWithAgent(t, "sad_agent", srv.URL)

	got := newTestDispatcher().Send(context.Background(), store, "sad_agent", "hello")
	if !strings.HasPrefix(got, "Error communicating with sad_agent:") {
		t.Errorf("unexpected reply: %q", got)
	}
	if !strings.Contains(got, "agent exploded") {
		t.Errorf("reply should carry the rpc message: %q", got)
	}
}
