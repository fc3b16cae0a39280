package scorebase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebase/ai/mock"
	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/ingest"
	"github.com/clefworks/scorebase/search"
)

func openTestLibrary(t *testing.T, opts ...LibraryOption) *Library {
	t.Helper()

	library, err := Open("", append(opts, WithInMemoryStorage())...)
	require.NoError(t, err)
	t.Cleanup(func() { library.Close() })
	return library
}

func TestOpenLocalOnly(t *testing.T) {
	library := openTestLibrary(t)
	ctx := context.Background()

	item := &core.LibraryItem{
		Title:      "Prelude in C Major",
		Composer:   "Bach",
		Provenance: core.ProvenanceLocalImport,
		Signature:  core.SignatureFromMetadata("Prelude in C Major", "Bach"),
	}
	_, err := library.LibraryRepository().Insert(ctx, item)
	require.NoError(t, err)

	t.Run("local search works", func(t *testing.T) {
		results, err := library.Index().Search(ctx, core.SearchQuery{Text: "bach"}, 5)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("importer works", func(t *testing.T) {
		importer, err := library.NewImporter()
		require.NoError(t, err)
		defer importer.Release()

		report, err := importer.Run(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, report.Imported)
	})

	t.Run("cloud operations are disabled", func(t *testing.T) {
		_, err := library.NewOrchestrator()
		assert.ErrorIs(t, err, ErrCloudDisabled)

		_, err = library.NewUploader()
		assert.ErrorIs(t, err, ErrCloudDisabled)
	})
}

func TestOpenWithProvider(t *testing.T) {
	library := openTestLibrary(t, WithProvider(mock.NewMockProvider()))
	ctx := context.Background()

	orchestrator, err := library.NewOrchestrator()
	require.NoError(t, err)

	// Empty library and empty mock cloud: the resolver suggests an upload.
	decision, err := orchestrator.Resolve(ctx, core.SearchQuery{Text: "anything"}, 5)
	require.NoError(t, err)
	assert.Equal(t, search.OutcomeSuggestUpload, decision.Outcome)

	uploader, err := library.NewUploader(ingest.WithDocumentsDir(t.TempDir()))
	require.NoError(t, err)

	item, err := uploader.Upload(ctx, "sheet.png", "Converted Piece", "Unknown")
	require.NoError(t, err)
	assert.Equal(t, core.ProvenanceUserUpload, item.Provenance)
}

func TestLibraryClose(t *testing.T) {
	library, err := Open("", WithInMemoryStorage())
	require.NoError(t, err)
	require.NoError(t, library.Close())
}
