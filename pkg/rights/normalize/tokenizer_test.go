package normalize

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tok := NewTokenizer(nil)

	tokens := tok.Tokenize("My boss took my passport!")
	want := []string{"boss", "took", "passport"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize = %v, want %v", tokens, want)
	}
}

func TestTokenizeLowercasesAndStripsPunctuation(t *testing.T) {
	tok := NewTokenizer([]string{})

	tokens := tok.Tokenize("SALARY?? unpaid... since:March")
	want := []string{"salary", "unpaid", "since", "march"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize = %v, want %v", tokens, want)
	}
}

func TestTokenizeStopwords(t *testing.T) {
	tok := NewTokenizer(nil)

	tokens := tok.Tokenize("I have not been paid")
	for _, word := range []string{"i", "have", "not", "been"} {
		for _, got := range tokens {
			if got == word {
				t.Errorf("Stopword %q should be filtered", word)
			}
		}
	}
	if len(tokens) != 1 || tokens[0] != "paid" {
		t.Errorf("Expected [paid], got %v", tokens)
	}
}

func TestTokenizeEmptyOutcomes(t *testing.T) {
	tok := NewTokenizer(nil)

	// Empty after normalization is a valid outcome, not an error.
	cases := []string{"", "   ", "!!! ???", "the a an", "12345", "x"}
	for _, input := range cases {
		if tokens := tok.Tokenize(input); len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", input, tokens)
		}
	}
}

func TestTokenizeKeepsMixedNumericTokens(t *testing.T) {
	tok := NewTokenizer([]string{})

	tokens := tok.Tokenize("my s-pass expires 2026")
	hasPass := false
	for _, got := range tokens {
		if got == "s-pass" {
			hasPass = true
		}
		if got == "2026" {
			t.Error("Pure-numeric tokens should be dropped")
		}
	}
	if !hasPass {
		t.Errorf("Hyphenated token should survive, got %v", tokens)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	tok := NewTokenizer(nil)

	input := "my employer keeps my passport and I am afraid"
	first := tok.Tokenize(input)
	for i := 0; i < 10; i++ {
		if got := tok.Tokenize(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestAddRemoveStopword(t *testing.T) {
	tok := NewTokenizer([]string{"the"})

	if got := tok.Tokenize("the passport"); len(got) != 1 {
		t.Errorf("Expected [passport], got %v", got)
	}
	tok.RemoveStopword("the")
	if got := tok.Tokenize("the passport"); len(got) != 2 {
		t.Errorf("Expected 2 tokens after removal, got %v", got)
	}
	tok.AddStopword("PASSPORT")
	if got := tok.Tokenize("the passport"); len(got) != 1 || got[0] != "the" {
		t.Errorf("AddStopword should be case-insensitive, got %v", got)
	}
}

func TestLoadStopwords(t *testing.T) {
	terms, err := LoadStopwords("../../../configs/stopwords.yaml")
	if err != nil {
		t.Fatalf("LoadStopwords failed: %v", err)
	}
	if len(terms) == 0 {
		t.Fatal("Shipped stopword list should not be empty")
	}

	if _, err := LoadStopwords("missing.yaml"); err == nil {
		t.Error("Missing file should error")
	}
}
