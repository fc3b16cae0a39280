// Copyright 2025 Clefworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/clefworks/scorebase/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock searcher and converter instances.
type MockProvider struct {
	searcher  *MockCloudSearcher
	converter *MockScoreConverter
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockSearcher()/GetMockConverter() to access concrete types for test
// assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		searcher:  NewMockCloudSearcher(),
		converter: NewMockScoreConverter(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(searcher *MockCloudSearcher, converter *MockScoreConverter) ai.Provider {
	return &MockProvider{
		searcher:  searcher,
		converter: converter,
	}
}

// CloudSearcher returns the mock searcher.
func (p *MockProvider) CloudSearcher() ai.CloudSearcher {
	return p.searcher
}

// ScoreConverter returns the mock converter.
func (p *MockProvider) ScoreConverter() ai.ScoreConverter {
	return p.converter
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockSearcher returns the underlying mock searcher for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockSearcher() *MockCloudSearcher {
	return p.searcher
}

// GetMockConverter returns the underlying mock converter for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockConverter() *MockScoreConverter {
	return p.converter
}
