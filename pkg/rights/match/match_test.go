package match

import (
	"context"
	"reflect"
	"testing"

	"github.com/hellofriends/rights-engine/pkg/rights/kb"
)

const testDoc = `
rights:
  - id: salary-unpaid
    category: payment
    title: Unpaid Salary
    keywords: [paid, salary, unpaid, wage]
    summary: Salary rules.
    contacts:
      - name: MOM
        phone: 6438 5122
  - id: passport-withheld
    category: documents
    title: Passport Withheld
    keywords: [passport, document, took, kept]
    summary: Document rules.
    contacts:
      - name: MOM
        phone: 6438 5122
  - id: rest-days
    category: rest
    title: Rest Days
    keywords: [rest, day, off, salary]
    summary: Rest rules.
    contacts:
      - name: MOM
        phone: 6438 5122
`

func testBase(t *testing.T) *kb.KnowledgeBase {
	t.Helper()
	base, err := kb.Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return base
}

func TestRetrieveBestOverlap(t *testing.T) {
	m := NewKeywordMatcher(testBase(t))

	result, err := m.Retrieve(context.Background(), []string{"boss", "took", "passport"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !result.HasMatch() {
		t.Fatal("Expected a match")
	}
	if result.Entry.ID != "passport-withheld" {
		t.Errorf("Expected passport-withheld, got %s", result.Entry.ID)
	}
	if result.Score != 2 {
		t.Errorf("Expected score 2 (took, passport), got %d", result.Score)
	}
}

func TestRetrieveNoMatch(t *testing.T) {
	m := NewKeywordMatcher(testBase(t))

	result, err := m.Retrieve(context.Background(), []string{"xyzabc", "nonsense"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if result.HasMatch() {
		t.Errorf("Expected no match, got %s", result.Entry.ID)
	}
	if result.Score != 0 {
		t.Errorf("Expected score 0, got %d", result.Score)
	}
}

func TestRetrieveEmptyTokens(t *testing.T) {
	m := NewKeywordMatcher(testBase(t))

	result, err := m.Retrieve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if result.HasMatch() {
		t.Error("Empty token set must not match")
	}
}

func TestThresholdBoundary(t *testing.T) {
	// Boundary is inclusive on the match side: a best score equal to the
	// threshold matches, one token below does not.
	m := NewKeywordMatcher(testBase(t), WithMinOverlap(2))

	atThreshold, err := m.Retrieve(context.Background(), []string{"paid", "salary"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !atThreshold.HasMatch() || atThreshold.Score != 2 {
		t.Errorf("Score equal to threshold must match, got %+v", atThreshold)
	}

	belowThreshold, err := m.Retrieve(context.Background(), []string{"paid", "quickly"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if belowThreshold.HasMatch() {
		t.Errorf("Score below threshold must not match, got %s", belowThreshold.Entry.ID)
	}
	if belowThreshold.Score != 1 {
		t.Errorf("NoMatch result should still report the best score, got %d", belowThreshold.Score)
	}
}

func TestTieBreakDeclarationOrder(t *testing.T) {
	m := NewKeywordMatcher(testBase(t))

	// "salary" appears in both salary-unpaid and rest-days with score 1;
	// the earlier declared entry must win.
	result, err := m.Retrieve(context.Background(), []string{"salary"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !result.HasMatch() || result.Entry.ID != "salary-unpaid" {
		t.Errorf("Tie must go to the earlier entry, got %+v", result)
	}
}

func TestRetrieveDeterministic(t *testing.T) {
	m := NewKeywordMatcher(testBase(t))
	tokens := []string{"salary", "rest", "day"}

	first, err := m.Retrieve(context.Background(), tokens)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		got, err := m.Retrieve(context.Background(), tokens)
		if err != nil {
			t.Fatalf("Retrieve failed: %v", err)
		}
		if got.Entry.ID != first.Entry.ID || got.Score != first.Score {
			t.Fatalf("Retrieve is not deterministic: %+v vs %+v", got, first)
		}
		if !reflect.DeepEqual(got.Matched, first.Matched) {
			t.Fatalf("Matched tokens differ: %v vs %v", got.Matched, first.Matched)
		}
	}
}

func TestDuplicateQueryTokensCountOnce(t *testing.T) {
	m := NewKeywordMatcher(testBase(t), WithMinOverlap(2))

	result, err := m.Retrieve(context.Background(), []string{"paid", "paid", "paid"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if result.HasMatch() {
		t.Errorf("Repeated tokens must not inflate the score, got %+v", result)
	}
}

func TestWithMinOverlapFloor(t *testing.T) {
	m := NewKeywordMatcher(testBase(t), WithMinOverlap(0))
	if m.MinOverlap() != 1 {
		t.Errorf("MinOverlap below 1 should be coerced to 1, got %d", m.MinOverlap())
	}
}
