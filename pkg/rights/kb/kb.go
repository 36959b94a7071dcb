// Package kb holds the migrant worker rights knowledge base: a small,
// read-only collection of rights entries loaded once at startup.
package kb

// Category classifies a rights entry.
type Category string

// Known categories. The loader rejects anything else.
const (
	CategoryPayment       Category = "payment"
	CategoryDocuments     Category = "documents"
	CategoryMedical       Category = "medical"
	CategoryRest          Category = "rest"
	CategoryAccommodation Category = "accommodation"
	CategoryEmployment    Category = "employment"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryPayment, CategoryDocuments, CategoryMedical,
		CategoryRest, CategoryAccommodation, CategoryEmployment:
		return true
	}
	return false
}

// Contact is a helpline or agency a worker can reach out to.
type Contact struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Scope string `yaml:"scope"`
}

// Translation carries localized text for one entry in one language.
type Translation struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Steps   []string `yaml:"steps"`
}

// Entry is one knowledge-base record. Immutable after load.
type Entry struct {
	ID           string                 `yaml:"id"`
	Category     Category               `yaml:"category"`
	Title        string                 `yaml:"title"`
	Keywords     []string               `yaml:"keywords"`
	Summary      string                 `yaml:"summary"`
	Steps        []string               `yaml:"steps"`
	Contacts     []Contact              `yaml:"contacts"`
	Translations map[string]Translation `yaml:"translations"`
}

// KeywordSet returns the entry's keywords as a lookup set.
func (e Entry) KeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(e.Keywords))
	for _, k := range e.Keywords {
		set[k] = struct{}{}
	}
	return set
}

// KnowledgeBase is the full read-only collection of entries. Entries keep
// their declaration order from the source document; that order is the
// deterministic tie-break used by the matcher.
type KnowledgeBase struct {
	entries   []Entry
	byID      map[string]int
	emergency []Contact
	disclaim  []string
}

// Entries returns all entries in declaration order.
func (k *KnowledgeBase) Entries() []Entry {
	return k.entries
}

// Len returns the number of entries.
func (k *KnowledgeBase) Len() int {
	return len(k.entries)
}

// ByID looks up an entry by its identifier.
func (k *KnowledgeBase) ByID(id string) (Entry, bool) {
	idx, ok := k.byID[id]
	if !ok {
		return Entry{}, false
	}
	return k.entries[idx], true
}

// ByCategory returns all entries in a category, in declaration order.
func (k *KnowledgeBase) ByCategory(c Category) []Entry {
	var out []Entry
	for _, e := range k.entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// EmergencyContacts returns the emergency contact list (999, 995, ...).
func (k *KnowledgeBase) EmergencyContacts() []Contact {
	return k.emergency
}

// Disclaimers returns the disclaimer texts declared in the source document.
func (k *KnowledgeBase) Disclaimers() []string {
	return k.disclaim
}
