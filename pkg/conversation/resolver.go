package conversation

import (
	"fmt"
	"strings"
	"time"

	"intent-search-be/pkg/store"
)

// Demonstrative terms that signal the query points back at an earlier result
var referenceTerms = []string{"that one", "those", "this product", "it", "that"}

// MaxProductReferences caps how many products a turn remembers.
const MaxProductReferences = 3

// ResolveReferences rewrites a follow-up query like "do you have those in
// red" into a standalone one by appending the most recently referenced
// product name. Returns the (possibly rewritten) query and whether a rewrite
// happened.
func ResolveReferences(query string, history []store.Turn) (string, bool) {
	processed := strings.TrimSpace(query)
	if len(history) == 0 || !containsReferenceTerm(processed) {
		return processed, false
	}

	// Walk history newest-first for the last turn that recorded products
	for i := len(history) - 1; i >= 0; i-- {
		refs := history[i].ProductReferences
		if len(refs) == 0 {
			continue
		}
		resolved := fmt.Sprintf("%s like %s", processed, refs[0].Name)
		return resolved, true
	}

	return processed, false
}

func containsReferenceTerm(query string) bool {
	lowered := strings.ToLower(query)
	for _, term := range referenceTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// BuildTurn creates a history entry from a completed search. Only the top
// results are kept as references so follow-ups stay unambiguous.
func BuildTurn(query string, response string, results []store.RankedProduct) store.Turn {
	refs := make([]store.ProductReference, 0, MaxProductReferences)
	for _, product := range results {
		if len(refs) >= MaxProductReferences {
			break
		}
		refs = append(refs, store.ProductReference{
			ID:   product.ID,
			Name: product.Name,
		})
	}

	return store.Turn{
		Query:             query,
		Response:          response,
		ProductReferences: refs,
		Timestamp:         time.Now().UTC(),
	}
}

// AppendTurn adds a turn to the history, dropping the oldest entries beyond
// the limit.
func AppendTurn(history []store.Turn, turn store.Turn, limit int) []store.Turn {
	updated := append(append([]store.Turn{}, history...), turn)
	if limit > 0 && len(updated) > limit {
		updated = updated[len(updated)-limit:]
	}
	return updated
}
