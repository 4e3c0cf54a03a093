// Package skills provides the skill vocabulary and keyword extraction used
// to compare resumes against job descriptions.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Vocabulary is an ordered list of recognized skill terms. Term identity is
// the lowercased form; Display returns the presentation form. Order is
// significant: extraction results preserve vocabulary order.
type Vocabulary []string

// DefaultVocabulary is the built-in skill keyword list.
var DefaultVocabulary = Vocabulary{
	"python", "javascript", "react", "node", "sql", "mongodb", "aws", "docker",
	"git", "html", "css", "java", "c++", "machine learning", "data analysis",
	"communication", "teamwork", "leadership", "problem solving", "agile",
	"rest api", "typescript", "testing", "debugging", "project management",
}

// New builds a vocabulary from raw terms: terms are lowercased, trimmed and
// deduplicated, preserving first-occurrence order.
func New(terms []string) Vocabulary {
	seen := make(map[string]bool, len(terms))
	vocab := make(Vocabulary, 0, len(terms))
	for _, term := range terms {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		vocab = append(vocab, normalized)
	}
	return vocab
}

// Load reads a custom vocabulary from a file. The file may be either a JSON
// array of strings or plain text with one term per line (blank lines and
// lines starting with '#' are skipped).
func Load(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var terms []string
		if err := json.Unmarshal([]byte(trimmed), &terms); err != nil {
			return nil, fmt.Errorf("failed to parse vocabulary JSON %s: %w", path, err)
		}
		return newNonEmpty(terms, path)
	}

	var terms []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	return newNonEmpty(terms, path)
}

func newNonEmpty(terms []string, path string) (Vocabulary, error) {
	vocab := New(terms)
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocabulary file %s contains no terms", path)
	}
	return vocab, nil
}

// Display returns the presentation form of a term: first letter capitalized,
// remainder unchanged.
func Display(term string) string {
	if term == "" {
		return ""
	}
	return strings.ToUpper(term[:1]) + term[1:]
}

// DisplayAll maps Display over a list of terms.
func DisplayAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = Display(term)
	}
	return out
}
