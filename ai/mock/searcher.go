package mock

import (
	"context"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

// MockCloudSearcher is a test double for ai.CloudSearcher.
// It allows custom behavior injection via function fields.
type MockCloudSearcher struct {
	// SearchFunc is called by Search if set.
	// If nil, returns an empty result set.
	SearchFunc func(ctx context.Context, query core.SearchQuery, limit int) ([]ai.CloudCandidate, error)

	callCount int
}

// NewMockCloudSearcher creates a mock searcher with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSearcher().
func NewMockCloudSearcher() *MockCloudSearcher {
	return &MockCloudSearcher{}
}

// Search returns an empty result set unless SearchFunc is set.
func (m *MockCloudSearcher) Search(ctx context.Context, query core.SearchQuery, limit int) ([]ai.CloudCandidate, error) {
	m.callCount++

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}

	return []ai.CloudCandidate{}, nil
}

// CallCount returns the number of times Search was called.
func (m *MockCloudSearcher) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockCloudSearcher) Reset() {
	m.callCount = 0
	m.SearchFunc = nil
}
