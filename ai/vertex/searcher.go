package vertex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

// Searcher implements ai.CloudSearcher against a discovery-engine datastore.
type Searcher struct {
	client    *http.Client
	searchURL string
	apiKey    string
	logger    *slog.Logger
}

// searchRequest is the datastore query payload.
type searchRequest struct {
	Query    string `json:"query"`
	PageSize int    `json:"pageSize"`
	Filter   string `json:"filter,omitempty"`
}

// searchResponse is the subset of the datastore response we consume.
type searchResponse struct {
	Results []struct {
		Id       string `json:"id"`
		Document struct {
			StructData struct {
				Title        string `json:"title"`
				Composer     string `json:"composer"`
				KeySignature string `json:"key_signature"`
				Signature    string `json:"signature"`
			} `json:"structData"`
		} `json:"document"`
		RelevanceScore float32 `json:"relevanceScore"`
	} `json:"results"`
}

// newSearcher is an internal constructor that returns the concrete type.
func newSearcher(config *ai.Config) (*Searcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"%s/v1/projects/%s/locations/%s/dataStores/%s/servingConfigs/default_search:search",
		config.SearchEndpoint, config.Project, config.Location, config.DataStore,
	)

	return &Searcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		searchURL: url,
		apiKey:    config.APIKey,
		logger:    slog.Default().With("component", "vertex-searcher"),
	}, nil
}

// NewSearcher creates a new datastore searcher using the provided
// configuration.
//
// Returns ai.CloudSearcher interface to enforce abstraction.
func NewSearcher(config *ai.Config) (ai.CloudSearcher, error) {
	return newSearcher(config)
}

// Search runs the query against the datastore and returns up to limit
// ranked candidates with scores clamped to [0,1].
func (s *Searcher) Search(ctx context.Context, query core.SearchQuery, limit int) ([]ai.CloudCandidate, error) {
	if limit <= 0 {
		return []ai.CloudCandidate{}, nil
	}

	body, err := json.Marshal(searchRequest{
		Query:    buildQueryText(query),
		PageSize: limit,
		Filter:   buildFilter(query),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	s.logger.Debug("querying datastore", "limit", limit)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("datastore query timed out")
			return nil, fmt.Errorf("%w: %w", ai.ErrTimeout, err)
		}
		s.logger.Error("datastore unreachable", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		s.logger.Error("datastore query rejected", "status", resp.StatusCode)
		return nil, err
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ai.ErrRemoteUnavailable, err)
	}

	candidates := make([]ai.CloudCandidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		candidates = append(candidates, ai.CloudCandidate{
			Reference:    r.Id,
			Title:        r.Document.StructData.Title,
			Composer:     r.Document.StructData.Composer,
			KeySignature: r.Document.StructData.KeySignature,
			Signature:    r.Document.StructData.Signature,
			Score:        clampScore(r.RelevanceScore),
		})
		if len(candidates) == limit {
			break
		}
	}

	s.logger.Debug("datastore query complete", "results", len(candidates))
	return candidates, nil
}

// checkStatus maps HTTP failure classes onto the ai error taxonomy.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: datastore returned status %d", ai.ErrAuth, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: datastore returned status %d", ai.ErrRemoteUnavailable, resp.StatusCode)
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: datastore returned status %d: %s",
			ai.ErrRemoteUnavailable, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
}

// buildQueryText joins free text and structured fields into a single query
// string for the datastore.
func buildQueryText(query core.SearchQuery) string {
	parts := make([]string, 0, 3)
	if query.Text != "" {
		parts = append(parts, query.Text)
	}
	if query.Composer != "" {
		parts = append(parts, query.Composer)
	}
	if query.Title != "" {
		parts = append(parts, query.Title)
	}
	return strings.Join(parts, " ")
}

// buildFilter renders structured field constraints in datastore filter
// syntax. Free text never becomes a filter.
func buildFilter(query core.SearchQuery) string {
	filters := make([]string, 0, 2)
	if query.Composer != "" {
		filters = append(filters, fmt.Sprintf("composer: ANY(%q)", query.Composer))
	}
	if query.Title != "" {
		filters = append(filters, fmt.Sprintf("title: ANY(%q)", query.Title))
	}
	return strings.Join(filters, " AND ")
}

func clampScore(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
