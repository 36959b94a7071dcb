// Package match selects the knowledge-base entry that best fits a
// normalized query. Keyword overlap is the default strategy; the Retriever
// interface leaves room for an embedding-based strategy behind the same
// result contract.
package match

import (
	"context"

	"github.com/hellofriends/rights-engine/pkg/rights/kb"
)

// Result is the outcome of a retrieval. NoMatch is a valid terminal value,
// not an error: Entry is nil and Score is below the matcher's threshold.
type Result struct {
	Entry   *kb.Entry
	Score   int
	Jaccard float64
	Matched []string
}

// HasMatch reports whether the result references an entry.
func (r Result) HasMatch() bool {
	return r.Entry != nil
}

// Retriever fetches the best knowledge-base candidate for a token set.
type Retriever interface {
	Retrieve(ctx context.Context, tokens []string) (Result, error)
}

// KeywordMatcher scores entries by keyword overlap with the query tokens.
//
// Score is the count of distinct query tokens present in the entry's keyword
// set. The entry with the highest score wins; on an equal score the entry
// declared earlier in the knowledge-base document wins. Both rules are fixed,
// so identical queries always return identical results.
type KeywordMatcher struct {
	base       *kb.KnowledgeBase
	minOverlap int
}

// Option configures a KeywordMatcher.
type Option func(*KeywordMatcher)

// WithMinOverlap sets the minimum overlap score required for a match.
// A best score equal to the threshold matches; one below yields NoMatch.
// Values below 1 are coerced to 1.
func WithMinOverlap(n int) Option {
	return func(m *KeywordMatcher) {
		if n < 1 {
			n = 1
		}
		m.minOverlap = n
	}
}

// NewKeywordMatcher creates a matcher over an immutable knowledge base.
func NewKeywordMatcher(base *kb.KnowledgeBase, opts ...Option) *KeywordMatcher {
	m := &KeywordMatcher{base: base, minOverlap: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MinOverlap returns the configured match threshold.
func (m *KeywordMatcher) MinOverlap() int {
	return m.minOverlap
}

// Retrieve scans every entry in declaration order and returns the best one,
// or a NoMatch result when the best score is below the threshold. The scan
// is O(entries x keywords), which is fine for a corpus this small.
func (m *KeywordMatcher) Retrieve(_ context.Context, tokens []string) (Result, error) {
	if len(tokens) == 0 {
		return Result{}, nil
	}

	unique := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		unique = append(unique, tok)
	}

	var best Result
	entries := m.base.Entries()
	for i := range entries {
		e := &entries[i]
		keywords := e.KeywordSet()

		var matched []string
		for _, tok := range unique {
			if _, ok := keywords[tok]; ok {
				matched = append(matched, tok)
			}
		}
		score := len(matched)

		// Strictly-greater keeps the earliest declared entry on ties.
		if score > best.Score {
			best = Result{
				Entry:   e,
				Score:   score,
				Jaccard: jaccard(score, len(unique), len(keywords)),
				Matched: matched,
			}
		}
	}

	if best.Score < m.minOverlap {
		return Result{Score: best.Score}, nil
	}
	return best, nil
}

// jaccard computes |intersection| / |union| for the query and keyword sets.
// Kept as a diagnostic alongside the raw overlap count.
func jaccard(intersection, querySize, keywordSize int) float64 {
	union := querySize + keywordSize - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
