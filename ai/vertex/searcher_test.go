package vertex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

func testConfig(endpoint string) *ai.Config {
	return ai.NewConfig(
		ai.WithSearchEndpoint(endpoint),
		ai.WithAPIKey("test-key"),
		ai.WithProject("scores-test"),
		ai.WithDataStore("score-library"),
	)
}

func newTestSearcher(t *testing.T, handler http.HandlerFunc) (*Searcher, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	searcher, err := newSearcher(testConfig(server.URL))
	require.NoError(t, err)
	return searcher, server
}

func TestSearcherSearch(t *testing.T) {
	t.Run("parses and clamps results", func(t *testing.T) {
		searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results": [
				{"id": "doc-1", "document": {"structData": {"title": "Nocturne Op. 9 No. 2", "composer": "Chopin", "signature": "abc123"}}, "relevanceScore": 0.92},
				{"id": "doc-2", "document": {"structData": {"title": "Nocturne Op. 27 No. 2", "composer": "Chopin"}}, "relevanceScore": 1.7}
			]}`))
		})

		hits, err := searcher.Search(context.Background(), core.SearchQuery{Text: "chopin nocturne"}, 5)
		require.NoError(t, err)
		require.Len(t, hits, 2)

		assert.Equal(t, "doc-1", hits[0].Reference)
		assert.Equal(t, "Nocturne Op. 9 No. 2", hits[0].Title)
		assert.Equal(t, "Chopin", hits[0].Composer)
		assert.Equal(t, "abc123", hits[0].Signature)
		assert.InDelta(t, 0.92, hits[0].Score, 0.001)

		// Out-of-range remote score gets clamped into [0,1].
		assert.Equal(t, float32(1.0), hits[1].Score)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [
				{"id": "a", "relevanceScore": 0.9},
				{"id": "b", "relevanceScore": 0.8},
				{"id": "c", "relevanceScore": 0.7}
			]}`))
		})

		hits, err := searcher.Search(context.Background(), core.SearchQuery{Text: "etude"}, 2)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("zero limit skips the remote call", func(t *testing.T) {
		called := false
		searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		hits, err := searcher.Search(context.Background(), core.SearchQuery{Text: "etude"}, 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
		assert.False(t, called)
	})

	t.Run("unauthorized maps to auth error", func(t *testing.T) {
		searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := searcher.Search(context.Background(), core.SearchQuery{Text: "etude"}, 5)
		assert.ErrorIs(t, err, ai.ErrAuth)
	})

	t.Run("server failure maps to unavailable", func(t *testing.T) {
		searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := searcher.Search(context.Background(), core.SearchQuery{Text: "etude"}, 5)
		assert.ErrorIs(t, err, ai.ErrRemoteUnavailable)
	})

	t.Run("connection refused maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		searcher, err := newSearcher(testConfig(server.URL))
		require.NoError(t, err)

		_, err = searcher.Search(context.Background(), core.SearchQuery{Text: "etude"}, 5)
		assert.ErrorIs(t, err, ai.ErrRemoteUnavailable)
	})

	t.Run("deadline maps to timeout", func(t *testing.T) {
		searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := searcher.Search(ctx, core.SearchQuery{Text: "etude"}, 5)
		assert.ErrorIs(t, err, ai.ErrTimeout)
	})
}

func TestBuildQueryText(t *testing.T) {
	assert.Equal(t, "prelude Bach", buildQueryText(core.SearchQuery{Text: "prelude", Composer: "Bach"}))
	assert.Equal(t, "Moonlight Sonata", buildQueryText(core.SearchQuery{Title: "Moonlight Sonata"}))
}

func TestBuildFilter(t *testing.T) {
	assert.Empty(t, buildFilter(core.SearchQuery{Text: "free text only"}))
	assert.Equal(t, `composer: ANY("Bach")`, buildFilter(core.SearchQuery{Composer: "Bach"}))
	assert.Equal(t,
		`composer: ANY("Bach") AND title: ANY("Prelude in C")`,
		buildFilter(core.SearchQuery{Composer: "Bach", Title: "Prelude in C"}))
}
