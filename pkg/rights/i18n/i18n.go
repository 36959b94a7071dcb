// Package i18n provides the per-language string tables for rendered
// responses. Lookups fall back to the default language explicitly: the
// caller always learns when a translation was missing.
package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the fallback for missing translations.
const DefaultLanguage = "en"

// Message keys used by the response formatter.
const (
	KeyDisclaimer    = "disclaimer"
	KeyNoMatchTitle  = "no_match_title"
	KeyNoMatchBody   = "no_match_body"
	KeyRephrase      = "rephrase"
	KeyEmergency     = "emergency"
	KeyLabelSummary  = "label_summary"
	KeyLabelSteps    = "label_steps"
	KeyLabelContacts = "label_contacts"
)

// CategoryKey returns the catalog key for a category label, e.g.
// "category_payment".
func CategoryKey(category string) string {
	return "category_" + category
}

// Catalog holds string tables keyed by language code, then message key.
type Catalog struct {
	tables map[string]map[string]string
}

// NewCatalog returns a catalog preloaded with the built-in tables.
func NewCatalog() *Catalog {
	return &Catalog{tables: builtinTables()}
}

// Merge overlays a YAML file of the form {lang: {key: text}} onto the
// catalog. Existing keys are overwritten, unknown languages are added.
func (c *Catalog) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("merge catalog: %w", err)
	}
	var overlay map[string]map[string]string
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("merge catalog: %w", err)
	}
	for lang, table := range overlay {
		if c.tables[lang] == nil {
			c.tables[lang] = make(map[string]string, len(table))
		}
		for key, text := range table {
			c.tables[lang][key] = text
		}
	}
	return nil
}

// Supported reports whether a language has any table at all.
func (c *Catalog) Supported(lang string) bool {
	_, ok := c.tables[lang]
	return ok
}

// Languages returns the known language codes.
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.tables))
	for lang := range c.tables {
		langs = append(langs, lang)
	}
	return langs
}

// Lookup returns the text for key in lang. The second return is true when
// the requested language did not carry the key and the default language was
// used instead; the caller is expected to surface that, not hide it.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	if table, ok := c.tables[lang]; ok {
		if text, ok := table[key]; ok {
			return text, false
		}
	}
	text := c.tables[DefaultLanguage][key]
	return text, lang != DefaultLanguage
}

// LanguageName returns the display name for a language code.
func LanguageName(code string) string {
	names := map[string]string{
		"en": "English",
		"ta": "Tamil",
		"bn": "Bengali",
		"tl": "Tagalog",
		"id": "Bahasa Indonesia",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// builtinTables carries the shipped translations. Only English covers every
// key; the other languages hold what has been translated so far and rely on
// the flagged fallback for the rest.
func builtinTables() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			KeyDisclaimer:    "This information is for general guidance only and does not constitute legal advice. For specific legal matters, please consult a qualified lawyer or contact MOM directly.",
			KeyNoMatchTitle:  "No Specific Information Found",
			KeyNoMatchBody:   "We couldn't find specific information for your question, but we can still help. Contact MOM at 6438 5122 for employment matters, or try rephrasing your question with more detail.",
			KeyRephrase:      "Please rephrase your question with a few more details, for example: \"I have not been paid for two months\".",
			KeyEmergency:     "If you are in immediate danger, call the numbers below right away.",
			KeyLabelSummary:  "Summary",
			KeyLabelSteps:    "What You Can Do Now",
			KeyLabelContacts: "Helpful Contacts",

			"category_payment":       "Payment",
			"category_documents":     "Documents",
			"category_medical":       "Medical",
			"category_rest":          "Rest Days",
			"category_accommodation": "Accommodation",
			"category_employment":    "Employment",
		},
		"ta": {
			KeyLabelSummary:  "சுருக்கம்",
			KeyLabelSteps:    "இப்போது நீங்கள் செய்யக்கூடியவை",
			KeyLabelContacts: "உதவிக்கான தொடர்புகள்",
		},
		"bn": {
			KeyLabelSummary:  "সারসংক্ষেপ",
			KeyLabelSteps:    "এখন আপনি যা করতে পারেন",
			KeyLabelContacts: "সহায়ক যোগাযোগ",
		},
		"tl": {
			KeyLabelSummary:  "Buod",
			KeyLabelSteps:    "Ano ang Maaari Mong Gawin Ngayon",
			KeyLabelContacts: "Mga Makakatulong na Contact",
		},
		"id": {
			KeyLabelSummary:  "Ringkasan",
			KeyLabelSteps:    "Yang Bisa Anda Lakukan Sekarang",
			KeyLabelContacts: "Kontak yang Membantu",
		},
	}
}
