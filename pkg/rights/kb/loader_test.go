package kb

import (
	"errors"
	"testing"

	"github.com/hellofriends/rights-engine/pkg/rights/internalerr"
)

const validDoc = `
rights:
  - id: salary-unpaid
    category: payment
    title: Unpaid Salary
    keywords: [paid, salary, unpaid]
    summary: Salary must be paid within 7 days.
    steps:
      - Keep your payslips.
      - Report to MOM.
    contacts:
      - name: Ministry of Manpower (MOM)
        phone: 6438 5122
        scope: Salary claims
  - id: passport-withheld
    category: documents
    title: Passport Withheld
    keywords: [passport, document]
    summary: Your passport belongs to you.
    steps:
      - Report to MOM.
    contacts:
      - name: HOME
        phone: 6341 5535
emergency_contacts:
  - name: Police Emergency
    phone: "999"
  - name: Ambulance and Fire (SCDF)
    phone: "995"
disclaimers:
  - text: General guidance only.
`

func TestParseValidDocument(t *testing.T) {
	base, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if base.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", base.Len())
	}
	if len(base.EmergencyContacts()) != 2 {
		t.Errorf("Expected 2 emergency contacts, got %d", len(base.EmergencyContacts()))
	}
	if len(base.Disclaimers()) != 1 {
		t.Errorf("Expected 1 disclaimer, got %d", len(base.Disclaimers()))
	}

	entry, ok := base.ByID("salary-unpaid")
	if !ok {
		t.Fatal("salary-unpaid should be present")
	}
	if entry.Category != CategoryPayment {
		t.Errorf("Expected payment category, got %s", entry.Category)
	}
	if len(entry.Steps) != 2 {
		t.Errorf("Expected 2 steps, got %d", len(entry.Steps))
	}
}

func TestParsePreservesDeclarationOrder(t *testing.T) {
	base, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	entries := base.Entries()
	if entries[0].ID != "salary-unpaid" || entries[1].ID != "passport-withheld" {
		t.Errorf("Entry order should follow the document, got %s, %s", entries[0].ID, entries[1].ID)
	}
}

func TestParseRejectsMissingContacts(t *testing.T) {
	doc := `
rights:
  - id: no-contacts
    category: payment
    title: Broken Entry
    keywords: [pay]
    summary: Text.
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("Entry without contacts must fail the load")
	}
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("Expected ErrLoad, got %v", err)
	}
}

func TestParseRejectsMissingKeywords(t *testing.T) {
	doc := `
rights:
  - id: no-keywords
    category: payment
    title: Broken Entry
    summary: Text.
    contacts:
      - name: MOM
        phone: 6438 5122
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("Entry without keywords must fail the load")
	}
}

func TestParseRejectsUnknownCategory(t *testing.T) {
	doc := `
rights:
  - id: odd
    category: folklore
    title: Odd Entry
    keywords: [thing]
    contacts:
      - name: MOM
        phone: 6438 5122
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("Unknown category must fail the load")
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	doc := `
rights:
  - id: dup
    category: payment
    title: First
    keywords: [pay]
    contacts:
      - name: MOM
        phone: 6438 5122
  - id: dup
    category: rest
    title: Second
    keywords: [rest]
    contacts:
      - name: MOM
        phone: 6438 5122
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("Duplicate IDs must fail the load")
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := Parse([]byte("rights: []")); err == nil {
		t.Fatal("A document with no entries must fail the load")
	}
	if _, err := Parse([]byte("{invalid")); err == nil {
		t.Fatal("Malformed YAML must fail the load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	if err == nil {
		t.Fatal("Missing file must fail the load")
	}
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("Expected ErrLoad, got %v", err)
	}
}

func TestLoadShippedKnowledgeBase(t *testing.T) {
	base, err := Load("../../../kb/rights_sg.yaml")
	if err != nil {
		t.Fatalf("Shipped knowledge base must load: %v", err)
	}
	if base.Len() != 6 {
		t.Errorf("Expected 6 entries, got %d", base.Len())
	}
	for _, e := range base.Entries() {
		if len(e.Keywords) == 0 || len(e.Contacts) == 0 {
			t.Errorf("Entry %s violates the keywords/contacts invariant", e.ID)
		}
	}
}

func TestByCategory(t *testing.T) {
	base, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	docs := base.ByCategory(CategoryDocuments)
	if len(docs) != 1 || docs[0].ID != "passport-withheld" {
		t.Errorf("ByCategory(documents) = %v", docs)
	}
	if got := base.ByCategory(CategoryMedical); got != nil {
		t.Errorf("Expected no medical entries, got %v", got)
	}
}
