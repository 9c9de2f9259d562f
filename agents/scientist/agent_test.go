package scientist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Quantum Computing
    with Extra Whitespace</title>
    <summary>A survey.</summary>
    <link href="http://arxiv.org/abs/1234.5678v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/1234.5678v1" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <title>Second Paper</title>
    <summary>Another survey.</summary>
    <link href="http://arxiv.org/abs/9999.0001v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

func newAgentWithFeed(t *testing.T, handler http.HandlerFunc) *Agent {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config := DefaultConfig()
	config.ArxivURL = srv.URL
	return New(config)
}

func TestExecute_ListsPapers(t *testing.T) {
	agent := newAgentWithFeed(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_query"); !strings.Contains(got, "quantum computing") {
			t.Errorf("unexpected search_query: %q", got)
		}
		w.Write([]byte(sampleFeed))
	})

	got, err := agent.Execute(context.Background(), "Find papers about quantum computing")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(got, "Quantum Computing with Extra Whitespace") {
		t.Errorf("reply missing normalized title: %q", got)
	}
	if !strings.Contains(got, "http://arxiv.org/abs/1234.5678v1") {
		t.Errorf("reply missing link: %q", got)
	}
	if !strings.Contains(got, "2. Second Paper") {
		t.Errorf("reply missing second hit: %q", got)
	}
}

func TestExecute_NoHits(t *testing.T) {
	agent := newAgentWithFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	})

	got, err := agent.Execute(context.Background(), "papers about nothing whatsoever")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(got, "couldn't find any papers") {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestExecute_UpstreamFailureDegrades(t *testing.T) {
	agent := newAgentWithFeed(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	})

	got, err := agent.Execute(context.Background(), "Find papers about anything")
	if err != nil {
		t.Fatalf("upstream failure must not surface as error, got: %v", err)
	}
	if !strings.Contains(got, "couldn't reach") {
		t.Errorf("expected apologetic reply, got %q", got)
	}
}

func TestExecute_UnreachableUpstreamDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	config := DefaultConfig()
	config.ArxivURL = srv.URL
	agent := New(config)

	got, err := agent.Execute(context.Background(), "Find papers about anything")
	if err != nil {
		t.Fatalf("network failure must not surface as error, got: %v", err)
	}
	if got == "" {
		t.Error("reply must not be empty")
	}
}

func TestExtractTopic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Find papers about quantum computing", "quantum computing"},
		{"search for papers on neural networks", "neural networks"},
		{"research on superconductors", "superconductors"},
		{"plain topic", "plain topic"},
		{"papers about", "papers about"},
	}
	for _, tc := range cases {
		if got := extractTopic(tc.in); got != tc.want {
			t.Errorf("extractTopic(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCard(t *testing.T) {
	card := Card("http://localhost:9003/")
	if err := card.Validate(); err != nil {
		t.Fatalf("card invalid: %v", err)
	}
}
