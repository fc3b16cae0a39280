package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
)

// Index matches queries against the local metadata store.
// All iteration state is per-query, so an Index is safe for concurrent use.
type Index struct {
	repository storage.LibraryRepository
	logger     *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewIndex creates a new local search index over the given repository.
func NewIndex(repository storage.LibraryRepository, opts ...Option) (*Index, error) {
	if repository == nil {
		return nil, ErrLibraryRepositoryRequired
	}

	i := &Index{
		repository: repository,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// Search returns up to limit local candidates ranked by relevance.
// Structured filters must all match; free text is scored per token against
// title and composer. An empty result set is not an error.
func (i *Index) Search(ctx context.Context, query core.SearchQuery, limit int) ([]*core.Candidate, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*core.Candidate{}, nil
	}

	items, err := i.repository.List(ctx)
	if err != nil {
		i.logger.Error("error listing library items", "err", err)
		return nil, err
	}

	tokens := tokenize(query.Text)
	candidates := make([]*core.Candidate, 0, len(items))

	for _, item := range items {
		if !matchesFilters(item, query) {
			continue
		}

		score := scoreItem(item, tokens)
		if score == 0 && len(tokens) > 0 {
			continue
		}
		if len(tokens) == 0 {
			// Filter-only query: filters matched, so this is a full hit.
			score = 1.0
		}

		candidates = append(candidates, &core.Candidate{
			Item:   item,
			Score:  score,
			Source: core.SourceLocal,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].Item.Id < candidates[b].Item.Id
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	i.logger.Debug("local search complete", "tokens", len(tokens), "results", len(candidates))
	return candidates, nil
}

// matchesFilters checks the query's structured filters against the item.
// Filters are case-insensitive substring matches and all must hold.
func matchesFilters(item *core.LibraryItem, query core.SearchQuery) bool {
	if query.Composer != "" && !strings.Contains(normalize(item.Composer), normalize(query.Composer)) {
		return false
	}
	if query.Title != "" && !strings.Contains(normalize(item.Title), normalize(query.Title)) {
		return false
	}
	return true
}

// scoreItem rates the item against the query tokens. Each token contributes
// its best field score over title, composer, and tags; the item score is
// the mean over all tokens.
func scoreItem(item *core.LibraryItem, tokens []string) float32 {
	if len(tokens) == 0 {
		return 0
	}

	fields := make([]string, 0, 2+len(item.Tags))
	fields = append(fields, normalize(item.Title), normalize(item.Composer))
	for _, tag := range item.Tags {
		fields = append(fields, normalize(tag))
	}

	var total float32
	for _, token := range tokens {
		var best float32
		for _, field := range fields {
			if s := fieldScore(token, field); s > best {
				best = s
			}
		}
		total += best
	}

	return total / float32(len(tokens))
}
