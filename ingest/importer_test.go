package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
	"github.com/clefworks/scorebase/storage/badger"
)

func newTestRepositories(t *testing.T) (storage.LibraryRepository, storage.CheckpointRepository) {
	t.Helper()

	repository, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	return repository, badger.NewCheckpointRepository(backend)
}

func scoreDocument(firstNote string) core.ScoreDocument {
	return core.ScoreDocument{
		Key:   "C",
		Tempo: 100,
		Measures: []core.Measure{
			{
				Number:    1,
				RightHand: []core.NoteGroup{{Notes: []string{firstNote}, Duration: "quarter"}},
				LeftHand:  []core.NoteGroup{{Notes: []string{"C3"}, Duration: "quarter"}},
			},
		},
	}
}

func writeImportFile(t *testing.T, dir, name string, file importFile) {
	t.Helper()

	data, err := json.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func newTestImporter(t *testing.T, library storage.LibraryRepository, checkpoints storage.CheckpointRepository) *Importer {
	t.Helper()

	importer, err := NewImporter(library, checkpoints, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(importer.Release)
	return importer
}

func TestImporterRun(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a directory of score files", func(t *testing.T) {
		library, checkpoints := newTestRepositories(t)
		dir := t.TempDir()

		for i := 0; i < 5; i++ {
			writeImportFile(t, dir, fmt.Sprintf("score-%d.json", i), importFile{
				Title:    fmt.Sprintf("Etude No. %d", i+1),
				Composer: "Czerny",
				Score:    scoreDocument(fmt.Sprintf("C%d", i+1)),
			})
		}

		report, err := newTestImporter(t, library, checkpoints).Run(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 5, report.Imported)
		assert.Zero(t, report.Skipped)
		assert.Zero(t, report.Failed)

		count, err := library.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("imported items carry local provenance and metadata", func(t *testing.T) {
		library, checkpoints := newTestRepositories(t)
		dir := t.TempDir()

		writeImportFile(t, dir, "waltz.json", importFile{
			Title:    "Minute Waltz",
			Composer: "Chopin",
			Tags:     []string{"waltz", "romantic"},
			Score:    scoreDocument("Db5"),
		})

		_, err := newTestImporter(t, library, checkpoints).Run(ctx, dir)
		require.NoError(t, err)

		items, err := library.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, "Minute Waltz", item.Title)
		assert.Equal(t, core.ProvenanceLocalImport, item.Provenance)
		assert.Equal(t, "C", item.KeySignature)
		assert.Equal(t, 100, item.Tempo)
		assert.Equal(t, 1, item.MeasureCount)
		assert.Equal(t, []string{"waltz", "romantic"}, item.Tags)
		assert.NotEmpty(t, item.Signature)
	})

	t.Run("duplicates are skipped and counted", func(t *testing.T) {
		library, checkpoints := newTestRepositories(t)
		dir := t.TempDir()

		same := scoreDocument("G4")
		writeImportFile(t, dir, "a.json", importFile{Title: "Aria", Composer: "Bach", Score: same})
		writeImportFile(t, dir, "b.json", importFile{Title: "Aria Copy", Composer: "Bach", Score: same})

		report, err := newTestImporter(t, library, checkpoints).Run(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Imported)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("unparseable files are counted not fatal", func(t *testing.T) {
		library, checkpoints := newTestRepositories(t)
		dir := t.TempDir()

		writeImportFile(t, dir, "good.json", importFile{
			Title: "Gymnopedie No. 1", Composer: "Satie", Score: scoreDocument("D4"),
		})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644))

		report, err := newTestImporter(t, library, checkpoints).Run(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Imported)
		assert.Equal(t, 1, report.Failed)
	})

	t.Run("resumes from a saved checkpoint", func(t *testing.T) {
		library, checkpoints := newTestRepositories(t)
		dir := t.TempDir()

		for i := 0; i < 4; i++ {
			writeImportFile(t, dir, fmt.Sprintf("score-%d.json", i), importFile{
				Title:    fmt.Sprintf("Invention No. %d", i+1),
				Composer: "Bach",
				Score:    scoreDocument(fmt.Sprintf("E%d", i+1)),
			})
		}

		// A previous run completed the first two files.
		require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
			Stage:    checkpointStage,
			Position: 2,
		}))

		report, err := newTestImporter(t, library, checkpoints).Run(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Resumed)
		assert.Equal(t, 2, report.Imported)

		// Completion clears the checkpoint.
		_, err = checkpoints.GetCheckpoint(ctx, checkpointStage)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("empty directory is a clean no-op", func(t *testing.T) {
		library, checkpoints := newTestRepositories(t)

		report, err := newTestImporter(t, library, checkpoints).Run(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, report.Imported)
	})
}

func TestNewImporterValidation(t *testing.T) {
	library, checkpoints := newTestRepositories(t)

	_, err := NewImporter(nil, checkpoints)
	assert.ErrorIs(t, err, ErrLibraryRepositoryRequired)

	_, err = NewImporter(library, nil)
	assert.ErrorIs(t, err, ErrCheckpointRepositoryRequired)
}
