package mock

import (
	"context"

	"github.com/clefworks/scorebase/core"
)

// MockScoreConverter is a test double for ai.ScoreConverter.
// It allows custom behavior injection via function fields.
type MockScoreConverter struct {
	// ConvertFunc is called by Convert if set.
	// If nil, returns a small deterministic score document.
	ConvertFunc func(ctx context.Context, path string) (*core.ScoreDocument, error)

	callCount int
}

// NewMockScoreConverter creates a mock converter with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockConverter().
func NewMockScoreConverter() *MockScoreConverter {
	return &MockScoreConverter{}
}

// Convert returns a deterministic single-measure document unless ConvertFunc
// is set. The same path always produces the same document.
func (m *MockScoreConverter) Convert(ctx context.Context, path string) (*core.ScoreDocument, error) {
	m.callCount++

	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, path)
	}

	return &core.ScoreDocument{
		Key:   "C",
		Tempo: 120,
		Measures: []core.Measure{
			{
				Number: 1,
				RightHand: []core.NoteGroup{
					{Notes: []string{"C4"}, Duration: "quarter"},
				},
				LeftHand: []core.NoteGroup{
					{Notes: []string{"C3"}, Duration: "quarter"},
				},
			},
		},
	}, nil
}

// CallCount returns the number of times Convert was called.
func (m *MockScoreConverter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockScoreConverter) Reset() {
	m.callCount = 0
	m.ConvertFunc = nil
}
