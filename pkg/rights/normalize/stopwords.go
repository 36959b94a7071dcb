package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// stoplistFile mirrors the YAML stopword file layout.
type stoplistFile struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords reads a stopword list from a YAML file.
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stopwords: %w", err)
	}
	var sl stoplistFile
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("load stopwords: %w", err)
	}
	return sl.Terms, nil
}

// DefaultStopwords returns the built-in English stopword list. It is small
// on purpose: over-aggressive filtering hurts short help-seeking queries
// like "i need a rest day".
func DefaultStopwords() []string {
	return []string{
		"the", "a", "an", "and", "or", "but",
		"in", "on", "at", "to", "for", "of", "with", "by",
		"is", "am", "are", "was", "were", "be", "been",
		"do", "does", "did", "have", "has", "had",
		"i", "me", "my", "we", "our", "you", "your",
		"he", "she", "it", "they", "them",
		"this", "that", "these", "those",
		"not", "no", "so", "very", "just", "please",
	}
}
