// Package retrieval grounds coaching replies in the stored knowledge
// corpus. Queries are embedded through the active provider and ranked
// against stored passages by cosine similarity.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/store"
)

const defaultTopK = 3

type Retriever struct {
	store    store.Storage
	provider provider.Provider
	topK     int
}

func NewRetriever(s store.Storage, p provider.Provider) *Retriever {
	return &Retriever{store: s, provider: p, topK: defaultTopK}
}

// WithTopK overrides how many passages Retrieve returns.
func (r *Retriever) WithTopK(k int) *Retriever {
	if k > 0 {
		r.topK = k
	}
	return r
}

// Retrieve embeds the query and returns the best-matching passages.
// An empty corpus yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]store.MemoryItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	vec, err := r.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	items, err := r.store.SearchMemory(vec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("memory search failed: %w", err)
	}
	return items, nil
}

// FormatContext renders retrieved passages into the knowledge block a
// coaching prompt embeds. Empty input yields an empty string.
func FormatContext(items []store.MemoryItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### RELEVANT KNOWLEDGE:\n")
	for i, it := range items {
		fmt.Fprintf(&b, "[%d] (%s) %s\n", i+1, it.Source, it.Content)
	}
	return b.String()
}
