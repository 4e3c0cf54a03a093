package skills

import "strings"

// Extract returns the subset of vocabulary terms present in text, in
// vocabulary order. Containment is a case-insensitive substring test, not a
// word-boundary match: multi-word terms like "machine learning" match as
// literal substrings, and embedded matches (e.g. "java" inside "javascript")
// are accepted by contract. Empty text yields an empty set.
func (v Vocabulary) Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	lower := strings.ToLower(text)
	found := make([]string, 0, len(v))
	for _, term := range v {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}
