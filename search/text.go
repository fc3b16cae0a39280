package search

import "strings"

// normalize lowercases text and collapses interior whitespace so field
// comparisons are insensitive to casing and spacing.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// tokenize splits text into normalized words with punctuation trimmed.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}

	return tokens
}

// fieldScore rates how well a single token matches a field. An exact match
// scores 1.0; a substring match scores the fraction of the field the token
// covers; no match scores 0. A token covering a larger fraction of a field
// never scores lower than one covering a smaller fraction.
func fieldScore(token, field string) float32 {
	if token == "" || field == "" {
		return 0
	}
	if !strings.Contains(field, token) {
		return 0
	}
	return float32(len(token)) / float32(len(field))
}
