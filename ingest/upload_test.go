package ingest

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/ai/mock"
	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
)

func newTestUploader(t *testing.T, converter *mock.MockScoreConverter) (*Uploader, storage.LibraryRepository) {
	t.Helper()

	library, _ := newTestRepositories(t)
	uploader, err := NewUploader(library, converter,
		WithDocumentsDir(t.TempDir()),
		WithConversionRetry(3, time.Millisecond))
	require.NoError(t, err)
	return uploader, library
}

func TestUploaderUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("converts persists and inserts", func(t *testing.T) {
		uploader, library := newTestUploader(t, mock.NewMockScoreConverter())

		item, err := uploader.Upload(ctx, "sheet.png", "Prelude in C Major", "Bach")
		require.NoError(t, err)

		assert.Equal(t, core.ProvenanceUserUpload, item.Provenance)
		assert.Equal(t, "Prelude in C Major", item.Title)
		assert.Equal(t, "C", item.KeySignature)
		assert.Equal(t, 1, item.MeasureCount)
		assert.NotZero(t, item.Id)

		// The converted document is persisted and re-readable.
		data, err := os.ReadFile(item.Path)
		require.NoError(t, err)
		var doc core.ScoreDocument
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "C", doc.Key)

		// The item landed in the library.
		stored, err := library.Get(ctx, item.Id)
		require.NoError(t, err)
		assert.Equal(t, item.Signature, stored.Signature)
	})

	t.Run("uploading the same sheet twice is a duplicate", func(t *testing.T) {
		uploader, _ := newTestUploader(t, mock.NewMockScoreConverter())

		_, err := uploader.Upload(ctx, "sheet.png", "Prelude", "Bach")
		require.NoError(t, err)

		_, err = uploader.Upload(ctx, "sheet-copy.png", "Prelude Again", "Bach")
		assert.ErrorIs(t, err, storage.ErrDuplicateContent)
	})

	t.Run("retries transient conversion failures", func(t *testing.T) {
		converter := mock.NewMockScoreConverter()
		calls := 0
		converter.ConvertFunc = func(ctx context.Context, path string) (*core.ScoreDocument, error) {
			calls++
			if calls < 3 {
				return nil, ai.ErrRemoteUnavailable
			}
			converter.ConvertFunc = nil
			return converter.Convert(ctx, path)
		}

		uploader, _ := newTestUploader(t, converter)

		_, err := uploader.Upload(ctx, "sheet.png", "Prelude", "Bach")
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("format errors are not retried", func(t *testing.T) {
		converter := mock.NewMockScoreConverter()
		calls := 0
		converter.ConvertFunc = func(ctx context.Context, path string) (*core.ScoreDocument, error) {
			calls++
			return nil, ai.ErrUnsupportedFormat
		}

		uploader, _ := newTestUploader(t, converter)

		_, err := uploader.Upload(ctx, "sheet.mid", "Prelude", "Bach")
		assert.ErrorIs(t, err, ai.ErrUnsupportedFormat)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausted retries surface the boundary error", func(t *testing.T) {
		converter := mock.NewMockScoreConverter()
		converter.ConvertFunc = func(ctx context.Context, path string) (*core.ScoreDocument, error) {
			return nil, ai.ErrTimeout
		}

		uploader, _ := newTestUploader(t, converter)

		_, err := uploader.Upload(ctx, "sheet.png", "Prelude", "Bach")
		assert.ErrorIs(t, err, ai.ErrTimeout)
	})
}

func TestNewUploaderValidation(t *testing.T) {
	library, _ := newTestRepositories(t)

	_, err := NewUploader(nil, mock.NewMockScoreConverter())
	assert.ErrorIs(t, err, ErrLibraryRepositoryRequired)

	_, err = NewUploader(library, nil)
	assert.ErrorIs(t, err, ErrConverterRequired)
}
