// Package mock provides test double implementations of the remote service
// interfaces.
//
// This package contains mock implementations of ai.CloudSearcher,
// ai.ScoreConverter, and ai.Provider for use in unit tests. The mocks allow
// tests to run without network access and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	hits, err := mockProvider.CloudSearcher().Search(ctx, query, 5)
//
//	// Custom behavior injection
//	searcher := mock.NewMockCloudSearcher()
//	searcher.SearchFunc = func(ctx context.Context, query core.SearchQuery, limit int) ([]ai.CloudCandidate, error) {
//	    return nil, ai.ErrTimeout
//	}
//
//	// Check call counts
//	count := searcher.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockCloudSearcher: Returns an empty result set
//   - MockScoreConverter: Returns a small deterministic score document
//   - MockProvider: Aggregates mock searcher and converter
package mock
