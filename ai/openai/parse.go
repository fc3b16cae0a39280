package openai

import (
	"encoding/json"
	"strings"

	"github.com/clefworks/scorebase/core"
)

// stripFences removes markdown code fences that some models wrap around
// JSON output despite JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeDocument parses a model response into a score document.
func decodeDocument(response string) (*core.ScoreDocument, error) {
	text := stripFences(response)

	var doc core.ScoreDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
