package match

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/hellofriends/rights-engine/pkg/rights/kb"
)

// Embedder produces a vector for a piece of text. internal/llm satisfies
// this with an OpenAI-compatible embeddings endpoint.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbeddingMatcher retrieves by cosine similarity between the query vector
// and per-entry vectors computed once at construction. It honors the same
// Result contract as KeywordMatcher so the formatter never needs to know
// which strategy produced the answer.
type EmbeddingMatcher struct {
	base    *kb.KnowledgeBase
	client  Embedder
	vectors [][]float64
	minSim  float64
}

// NewEmbeddingMatcher embeds every entry's title, summary, and keywords up
// front. minSim is the cosine similarity below which the retriever reports
// NoMatch; the boundary is inclusive on the match side.
func NewEmbeddingMatcher(ctx context.Context, base *kb.KnowledgeBase, client Embedder, minSim float64) (*EmbeddingMatcher, error) {
	m := &EmbeddingMatcher{
		base:    base,
		client:  client,
		vectors: make([][]float64, base.Len()),
		minSim:  minSim,
	}
	for i, e := range base.Entries() {
		text := e.Title + "\n" + e.Summary + "\n" + strings.Join(e.Keywords, " ")
		vec, err := client.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed entry %q: %w", e.ID, err)
		}
		m.vectors[i] = vec
	}
	return m, nil
}

// Retrieve embeds the joined tokens and returns the nearest entry.
// Ties keep the earliest declared entry, matching KeywordMatcher.
func (m *EmbeddingMatcher) Retrieve(ctx context.Context, tokens []string) (Result, error) {
	if len(tokens) == 0 {
		return Result{}, nil
	}
	qvec, err := m.client.Embed(ctx, strings.Join(tokens, " "))
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}

	bestIdx := -1
	bestSim := 0.0
	entries := m.base.Entries()
	for i := range entries {
		sim := cosine(qvec, m.vectors[i])
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestSim < m.minSim {
		return Result{}, nil
	}
	return Result{
		Entry:   &entries[bestIdx],
		Score:   1,
		Jaccard: bestSim,
		Matched: tokens,
	}, nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
