package kb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hellofriends/rights-engine/pkg/rights/internalerr"
)

// document mirrors the YAML layout of the knowledge base file.
type document struct {
	Rights            []Entry      `yaml:"rights"`
	EmergencyContacts []Contact    `yaml:"emergency_contacts"`
	Disclaimers       []disclaimer `yaml:"disclaimers"`
}

type disclaimer struct {
	Text string `yaml:"text"`
}

// Load reads and validates a knowledge base from a YAML file.
//
// The whole document is rejected if any entry is malformed: serving a rights
// entry without contacts is worse than refusing to serve at all, so the
// caller must treat a Load failure as fatal and show a maintenance state.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrLoad, path, err)
	}
	return Parse(data)
}

// Parse validates and assembles a knowledge base from YAML bytes.
func Parse(data []byte) (*KnowledgeBase, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", internalerr.ErrLoad, err)
	}
	if len(doc.Rights) == 0 {
		return nil, fmt.Errorf("%w: no rights entries declared", internalerr.ErrLoad)
	}

	base := &KnowledgeBase{
		entries:   doc.Rights,
		byID:      make(map[string]int, len(doc.Rights)),
		emergency: doc.EmergencyContacts,
	}
	for _, d := range doc.Disclaimers {
		if d.Text != "" {
			base.disclaim = append(base.disclaim, d.Text)
		}
	}

	for i, e := range doc.Rights {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %v", internalerr.ErrLoad, i, e.ID, err)
		}
		if _, dup := base.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: entry %d: duplicate id %q", internalerr.ErrLoad, i, e.ID)
		}
		base.byID[e.ID] = i
	}

	return base, nil
}

func validateEntry(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("missing id")
	}
	if e.Title == "" {
		return fmt.Errorf("missing title")
	}
	if !ValidCategory(e.Category) {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	if len(e.Keywords) == 0 {
		return fmt.Errorf("empty keyword set")
	}
	if len(e.Contacts) == 0 {
		return fmt.Errorf("no contacts")
	}
	for i, c := range e.Contacts {
		if c.Name == "" || c.Phone == "" {
			return fmt.Errorf("contact %d missing name or phone", i)
		}
	}
	return nil
}
