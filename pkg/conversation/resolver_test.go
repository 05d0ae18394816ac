package conversation

import (
	"testing"

	"intent-search-be/pkg/store"
)

func turnWithRefs(names ...string) store.Turn {
	refs := make([]store.ProductReference, len(names))
	for i, name := range names {
		refs[i] = store.ProductReference{ID: name, Name: name}
	}
	return store.Turn{Query: "q", Response: "r", ProductReferences: refs}
}

func TestResolveReferences(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		history      []store.Turn
		wantQuery    string
		wantResolved bool
	}{
		{
			name:         "no history",
			query:        "do you have those in red",
			history:      nil,
			wantQuery:    "do you have those in red",
			wantResolved: false,
		},
		{
			name:         "no reference term",
			query:        "wireless headphones",
			history:      []store.Turn{turnWithRefs("Sony WH-1000XM5")},
			wantQuery:    "wireless headphones",
			wantResolved: false,
		},
		{
			name:         "resolves against latest referenced product",
			query:        "do you have those in red",
			history:      []store.Turn{turnWithRefs("Old Mouse"), turnWithRefs("Sony WH-1000XM5")},
			wantQuery:    "do you have those in red like Sony WH-1000XM5",
			wantResolved: true,
		},
		{
			name:         "skips turns without references",
			query:        "is that one in stock",
			history:      []store.Turn{turnWithRefs("Kindle Paperwhite"), {Query: "hello", Response: "hi"}},
			wantQuery:    "is that one in stock like Kindle Paperwhite",
			wantResolved: true,
		},
		{
			name:         "reference term but no products in history",
			query:        "tell me more about it",
			history:      []store.Turn{{Query: "hello", Response: "hi"}},
			wantQuery:    "tell me more about it",
			wantResolved: false,
		},
		{
			name:         "query is trimmed",
			query:        "  cheap tablets  ",
			history:      nil,
			wantQuery:    "cheap tablets",
			wantResolved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, resolved := ResolveReferences(tt.query, tt.history)

			if got != tt.wantQuery {
				t.Errorf("query = %q, want %q", got, tt.wantQuery)
			}
			if resolved != tt.wantResolved {
				t.Errorf("resolved = %t, want %t", resolved, tt.wantResolved)
			}
		})
	}
}

func TestBuildTurn(t *testing.T) {
	results := []store.RankedProduct{
		{Product: store.Product{ID: "1", Name: "A"}},
		{Product: store.Product{ID: "2", Name: "B"}},
		{Product: store.Product{ID: "3", Name: "C"}},
		{Product: store.Product{ID: "4", Name: "D"}},
	}

	turn := BuildTurn("query", "response", results)

	if len(turn.ProductReferences) != MaxProductReferences {
		t.Fatalf("got %d references, want %d", len(turn.ProductReferences), MaxProductReferences)
	}
	if turn.ProductReferences[0].Name != "A" || turn.ProductReferences[2].Name != "C" {
		t.Errorf("unexpected references: %+v", turn.ProductReferences)
	}
	if turn.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestAppendTurn(t *testing.T) {
	var history []store.Turn
	for i := 0; i < 5; i++ {
		history = AppendTurn(history, store.Turn{Query: string(rune('a' + i))}, 3)
	}

	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Query != "c" || history[2].Query != "e" {
		t.Errorf("oldest turns should be dropped, got %+v", history)
	}

	// Zero limit keeps everything
	unbounded := AppendTurn(history, store.Turn{Query: "f"}, 0)
	if len(unbounded) != 4 {
		t.Errorf("unbounded length = %d, want 4", len(unbounded))
	}
}

func TestAppendTurnDoesNotMutateInput(t *testing.T) {
	original := []store.Turn{{Query: "keep"}}
	_ = AppendTurn(original, store.Turn{Query: "new"}, 10)

	if len(original) != 1 || original[0].Query != "keep" {
		t.Errorf("input history was mutated: %+v", original)
	}
}
