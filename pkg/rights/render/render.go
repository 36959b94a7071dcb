// Package render assembles matched knowledge-base entries into user-facing
// responses. Every response, whatever path produced it, carries the fixed
// general-guidance disclaimer; the formatter enforces that invariant rather
// than trusting its callers.
package render

import (
	"crypto/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hellofriends/rights-engine/pkg/rights/i18n"
	"github.com/hellofriends/rights-engine/pkg/rights/kb"
	"github.com/hellofriends/rights-engine/pkg/rights/match"
)

// Kind marks which terminal path produced a response.
type Kind string

const (
	KindMatch     Kind = "match"
	KindNoMatch   Kind = "no_match"
	KindRephrase  Kind = "rephrase"
	KindEmergency Kind = "emergency"
)

// Response is the final, display-ready answer. Derived per query, never
// persisted.
type Response struct {
	ID         string
	Kind       Kind
	Language   string
	Title      string
	Category   string
	Summary    string
	Steps      []string
	Contacts   []kb.Contact
	Disclaimer string
	Text       string

	// TranslationFallback is set when any requested-language string was
	// served from the default language instead. Observability only; it is
	// never shown to the user.
	TranslationFallback bool
}

// Formatter renders match results into responses.
type Formatter struct {
	catalog *i18n.Catalog
	base    *kb.KnowledgeBase
	log     *zap.Logger

	mu      sync.Mutex // guards entropy
	entropy *ulid.MonotonicEntropy
}

// NewFormatter creates a formatter. logger may be nil.
func NewFormatter(catalog *i18n.Catalog, base *kb.KnowledgeBase, logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{
		catalog: catalog,
		base:    base,
		entropy: ulid.Monotonic(rand.Reader, 0),
		log:     logger,
	}
}

// Render produces the response for a retrieval result in the requested
// language. A result without an entry renders the no-match fallback.
func (f *Formatter) Render(result match.Result, lang string) Response {
	if !result.HasMatch() {
		return f.NoMatch(lang)
	}
	return f.renderEntry(*result.Entry, lang)
}

func (f *Formatter) renderEntry(entry kb.Entry, lang string) Response {
	resp := Response{
		ID:       f.newID(),
		Kind:     KindMatch,
		Language: lang,
	}

	title, summary, steps := entry.Title, entry.Summary, entry.Steps
	if lang != i18n.DefaultLanguage {
		if tr, ok := entry.Translations[lang]; ok && tr.Title != "" && tr.Summary != "" {
			title, summary = tr.Title, tr.Summary
			if len(tr.Steps) == len(entry.Steps) {
				steps = tr.Steps
			} else {
				resp.TranslationFallback = true
			}
		} else {
			resp.TranslationFallback = true
		}
	}

	resp.Title = title
	resp.Summary = summary
	resp.Steps = steps
	resp.Contacts = entry.Contacts
	resp.Category = f.lookup(lang, i18n.CategoryKey(string(entry.Category)), &resp)
	resp.Disclaimer = f.lookup(lang, i18n.KeyDisclaimer, &resp)

	if resp.TranslationFallback {
		f.log.Info("translation fallback",
			zap.String("entry", entry.ID),
			zap.String("language", lang))
	}

	resp.Text = f.assemble(resp)
	return resp
}

// NoMatch renders the fixed fallback pointing at the MOM hotline and the
// emergency contacts.
func (f *Formatter) NoMatch(lang string) Response {
	resp := Response{
		ID:       f.newID(),
		Kind:     KindNoMatch,
		Language: lang,
		Contacts: f.fallbackContacts(),
	}
	resp.Title = f.lookup(lang, i18n.KeyNoMatchTitle, &resp)
	resp.Summary = f.lookup(lang, i18n.KeyNoMatchBody, &resp)
	resp.Disclaimer = f.lookup(lang, i18n.KeyDisclaimer, &resp)
	resp.Text = f.assemble(resp)
	return resp
}

// Rephrase renders the prompt shown when normalization left no tokens.
func (f *Formatter) Rephrase(lang string) Response {
	resp := Response{
		ID:       f.newID(),
		Kind:     KindRephrase,
		Language: lang,
	}
	resp.Summary = f.lookup(lang, i18n.KeyRephrase, &resp)
	resp.Disclaimer = f.lookup(lang, i18n.KeyDisclaimer, &resp)
	resp.Text = f.assemble(resp)
	return resp
}

// Emergency renders the immediate-danger response with the emergency
// contact list.
func (f *Formatter) Emergency(lang string) Response {
	resp := Response{
		ID:       f.newID(),
		Kind:     KindEmergency,
		Language: lang,
		Contacts: f.base.EmergencyContacts(),
	}
	resp.Summary = f.lookup(lang, i18n.KeyEmergency, &resp)
	resp.Disclaimer = f.lookup(lang, i18n.KeyDisclaimer, &resp)
	resp.Text = f.assemble(resp)
	return resp
}

// fallbackContacts merges the MOM hotline with the emergency contacts so the
// no-match path always gives the user someone to call.
func (f *Formatter) fallbackContacts() []kb.Contact {
	contacts := []kb.Contact{{
		Name:  "Ministry of Manpower (MOM)",
		Phone: "6438 5122",
		Scope: "Government agency for employment matters",
	}}
	return append(contacts, f.base.EmergencyContacts()...)
}

// lookup resolves a catalog key, recording and logging any fallback on the
// response being built.
func (f *Formatter) lookup(lang, key string, resp *Response) string {
	text, fellBack := f.catalog.Lookup(lang, key)
	if fellBack {
		resp.TranslationFallback = true
		f.log.Info("translation fallback",
			zap.String("key", key),
			zap.String("language", lang))
	}
	return text
}

// assemble flattens the structured response into display text. The
// disclaimer always closes the message; the content-policy framing lives in
// that one place.
func (f *Formatter) assemble(resp Response) string {
	var b strings.Builder

	if resp.Title != "" {
		b.WriteString("## ")
		if resp.Category != "" {
			b.WriteString(resp.Category)
			b.WriteString(": ")
		}
		b.WriteString(resp.Title)
		b.WriteString("\n\n")
	}

	if resp.Summary != "" {
		label := f.mustLookup(resp.Language, i18n.KeyLabelSummary)
		b.WriteString("**" + label + ":** " + resp.Summary + "\n\n")
	}

	if len(resp.Steps) > 0 {
		label := f.mustLookup(resp.Language, i18n.KeyLabelSteps)
		b.WriteString("**" + label + ":**\n")
		for i, step := range resp.Steps {
			b.WriteString(numbered(i, step))
		}
		b.WriteString("\n")
	}

	if len(resp.Contacts) > 0 {
		label := f.mustLookup(resp.Language, i18n.KeyLabelContacts)
		b.WriteString("**" + label + ":**\n")
		for _, c := range resp.Contacts {
			b.WriteString("- **" + c.Name + "** - " + c.Phone)
			if c.Scope != "" {
				b.WriteString(" (" + c.Scope + ")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(resp.Disclaimer)
	return strings.TrimSpace(b.String())
}

// mustLookup is a lookup whose fallback was already counted by the caller
// chain; labels share the fate of the rest of the response.
func (f *Formatter) mustLookup(lang, key string) string {
	text, _ := f.catalog.Lookup(lang, key)
	return text
}

func (f *Formatter) newID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ulid.MustNew(ulid.Now(), f.entropy).String()
}

func numbered(idx int, text string) string {
	return strconv.Itoa(idx+1) + ". " + text + "\n"
}
