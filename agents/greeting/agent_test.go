package greeting

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	agent := New()

	cases := []struct {
		query string
		want  string
	}{
		{"Good morning!", "morning"},
		{"How are you today?", "doing well"},
		{"Hello there", "Hello there!"},
		{"hi", "Hello there!"},
		{"What's up", "Greetings!"},
	}
	for _, tc := range cases {
		got, err := agent.Execute(context.Background(), tc.query)
		if err != nil {
			t.Fatalf("Execute(%q) failed: %v", tc.query, err)
		}
		if !strings.Contains(got, tc.want) {
			t.Errorf("Execute(%q) = %q, want substring %q", tc.query, got, tc.want)
		}
	}
}

func TestCard(t *testing.T) {
	card := Card("http://localhost:9002/")
	if err := card.Validate(); err != nil {
		t.Fatalf("card invalid: %v", err)
	}
	if len(card.Skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(card.Skills))
	}
}
