// Package retrieval ranks stored tools against a query by cosine similarity
// of embeddings.
package retrieval

import (
	"context"
	"sort"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/pkg/vector"
	"github.com/doeshing/pls-go/internal/ports"
)

// EmbeddingRetriever implements the Retriever port. It must use the same
// embedding model as the catalog build; a mismatch silently degrades ranking
// quality rather than failing.
type EmbeddingRetriever struct {
	llm   ports.LLMClient
	store ports.ToolStore
}

// New builds a retriever over the given gateway and store.
func New(llm ports.LLMClient, store ports.ToolStore) *EmbeddingRetriever {
	return &EmbeddingRetriever{llm: llm, store: store}
}

// Retrieve implements ports.Retriever. Tools without an embedding are
// excluded; ties keep storage order. Returns domain.ErrNoToolsIndexed when
// the catalog holds zero usable records.
func (r *EmbeddingRetriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.Tool, error) {
	all, err := r.store.LoadAllTools()
	if err != nil {
		return nil, err
	}
	usable := all[:0:0]
	for _, tool := range all {
		if tool.Retrievable() {
			usable = append(usable, tool)
		}
	}
	if len(usable) == 0 {
		return nil, domain.ErrNoToolsIndexed
	}

	queryEmbedding, err := r.llm.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scores := make([]float32, len(usable))
	for i, tool := range usable {
		scores[i] = vector.Cosine(queryEmbedding, tool.Embedding)
	}
	order := make([]int, len(usable))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	// topK comes from user config; a negative value must not panic the
	// slice operations below.
	if topK < 0 {
		topK = 0
	}
	if topK > len(order) {
		topK = len(order)
	}
	out := make([]domain.Tool, 0, topK)
	for _, idx := range order[:topK] {
		out = append(out, usable[idx])
	}
	return out, nil
}

var _ ports.Retriever = (*EmbeddingRetriever)(nil)
