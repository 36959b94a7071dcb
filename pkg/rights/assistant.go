// Package rights is the informational assistant core for migrant worker
// rights in Singapore: a static knowledge base, keyword retrieval over it,
// and localized response rendering. Per query the flow is
// Received -> Normalized -> Matched|NoMatch -> Rendered; every path ends in
// a rendered response, never a raw error to the user.
package rights

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hellofriends/rights-engine/pkg/rights/i18n"
	"github.com/hellofriends/rights-engine/pkg/rights/kb"
	"github.com/hellofriends/rights-engine/pkg/rights/match"
	"github.com/hellofriends/rights-engine/pkg/rights/normalize"
	"github.com/hellofriends/rights-engine/pkg/rights/render"
	"github.com/hellofriends/rights-engine/pkg/rights/store"
)

// Assistant answers rights questions from the loaded knowledge base. The
// knowledge base is read-only after construction, so an Assistant is safe
// for concurrent use.
type Assistant struct {
	base      *kb.KnowledgeBase
	tokenizer *normalize.Tokenizer
	retriever match.Retriever
	formatter *render.Formatter
	st        store.Store
	log       *zap.Logger
}

// Options configures an Assistant. KnowledgeBase is required; everything
// else has a sensible default.
type Options struct {
	KnowledgeBase *kb.KnowledgeBase
	Tokenizer     *normalize.Tokenizer
	Retriever     match.Retriever
	Formatter     *render.Formatter
	Store         store.Store // optional interaction recording
	Logger        *zap.Logger
}

// New creates an Assistant with the given dependencies.
func New(opts Options) (*Assistant, error) {
	if opts.KnowledgeBase == nil {
		return nil, errors.New("rights: knowledge base is required")
	}
	a := &Assistant{
		base:      opts.KnowledgeBase,
		tokenizer: opts.Tokenizer,
		retriever: opts.Retriever,
		formatter: opts.Formatter,
		st:        opts.Store,
		log:       opts.Logger,
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.tokenizer == nil {
		a.tokenizer = normalize.NewTokenizer(nil)
	}
	if a.retriever == nil {
		a.retriever = match.NewKeywordMatcher(a.base)
	}
	if a.formatter == nil {
		a.formatter = render.NewFormatter(i18n.NewCatalog(), a.base, a.log)
	}
	return a, nil
}

// Query is one user interaction: raw text plus the selected language code.
type Query struct {
	Text     string
	Language string
}

// Respond handles a query to completion. The returned response is always
// displayable; retrieval errors (only possible with a remote retriever) are
// the one case surfaced to the caller.
func (a *Assistant) Respond(ctx context.Context, q Query) (render.Response, error) {
	lang := q.Language
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	tokens := a.tokenizer.Tokenize(q.Text)

	var resp render.Response
	var result match.Result
	switch {
	case len(tokens) == 0:
		resp = a.formatter.Rephrase(lang)
	case isEmergency(tokens):
		resp = a.formatter.Emergency(lang)
	default:
		var err error
		result, err = a.retriever.Retrieve(ctx, tokens)
		if err != nil {
			return render.Response{}, err
		}
		resp = a.formatter.Render(result, lang)
	}

	a.record(ctx, resp, result)
	return resp, nil
}

// record logs the interaction to the store, best effort.
func (a *Assistant) record(ctx context.Context, resp render.Response, result match.Result) {
	if a.st == nil {
		return
	}
	it := store.Interaction{
		ID:        resp.ID,
		Language:  resp.Language,
		Kind:      string(resp.Kind),
		Score:     result.Score,
		Fallback:  resp.TranslationFallback,
		CreatedAt: time.Now(),
	}
	if result.HasMatch() {
		it.EntryID = result.Entry.ID
	}
	if err := a.st.RecordInteraction(ctx, it); err != nil {
		a.log.Warn("record interaction", zap.Error(err))
	}
}

// KnowledgeBase exposes the assistant's knowledge base for the stats
// surface.
func (a *Assistant) KnowledgeBase() *kb.KnowledgeBase {
	return a.base
}

// emergencyTerms flag queries that should short-circuit to the emergency
// contacts. Deliberately narrower than general distress words like "help",
// which appear in almost every query.
var emergencyTerms = map[string]struct{}{
	"emergency": {},
	"urgent":    {},
	"danger":    {},
	"dangerous": {},
	"hurt":      {},
	"injured":   {},
	"accident":  {},
	"fire":      {},
	"police":    {},
	"ambulance": {},
}

func isEmergency(tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := emergencyTerms[tok]; ok {
			return true
		}
	}
	return false
}
