package ai

import (
	"context"

	"github.com/clefworks/scorebase/core"
)

// CloudSearcher queries the managed semantic search datastore.
// Implementations must be thread-safe for concurrent use.
type CloudSearcher interface {
	// Search runs the query against the datastore and returns up to limit
	// ranked candidates. Scores are normalized to [0,1] by the
	// implementation so they compare with local relevance scores.
	// Honors ctx cancellation and deadline; a call must never block past
	// the caller's deadline.
	// Fails with ErrRemoteUnavailable, ErrTimeout, or ErrAuth.
	Search(ctx context.Context, query core.SearchQuery, limit int) ([]CloudCandidate, error)
}

// ScoreConverter converts a music sheet image into a structured score.
// Implementations must be thread-safe for concurrent use.
type ScoreConverter interface {
	// Convert reads the file at path and returns the recognized score.
	// Fails with ErrUnsupportedFormat before any remote call when the
	// file type or size is not accepted, and with ErrConversionFailed
	// when the model output cannot be turned into a valid document.
	Convert(ctx context.Context, path string) (*core.ScoreDocument, error)
}

// Provider aggregates the remote services for convenient initialization
// and lifecycle management.
type Provider interface {
	// CloudSearcher returns the datastore search service.
	CloudSearcher() CloudSearcher

	// ScoreConverter returns the sheet conversion service.
	ScoreConverter() ScoreConverter

	// Close releases resources held by the provider and its services.
	Close() error
}

// NewProvider bundles independently constructed services into a Provider.
func NewProvider(searcher CloudSearcher, converter ScoreConverter) Provider {
	return &serviceProvider{searcher: searcher, converter: converter}
}

type serviceProvider struct {
	searcher  CloudSearcher
	converter ScoreConverter
}

func (p *serviceProvider) CloudSearcher() CloudSearcher   { return p.searcher }
func (p *serviceProvider) ScoreConverter() ScoreConverter { return p.converter }
func (p *serviceProvider) Close() error                   { return nil }
