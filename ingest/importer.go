package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
)

// checkpointStage names the checkpoint slot used by bulk imports.
const checkpointStage = "library-import"

// importFile is the on-disk format of an importable score: metadata plus
// the structured document.
type importFile struct {
	Title    string             `json:"title"`
	Composer string             `json:"composer"`
	Tags     []string           `json:"tags,omitempty"`
	Score    core.ScoreDocument `json:"score"`
}

// ImportReport summarizes a bulk import run.
type ImportReport struct {
	Imported int // Items inserted
	Skipped  int // Duplicates already in the library
	Failed   int // Files that could not be read, parsed, or validated
	Resumed  int // Files skipped because a checkpoint covered them
}

// Importer bulk-loads score document files into the library.
type Importer struct {
	library     storage.LibraryRepository
	checkpoints storage.CheckpointRepository
	pool        *ants.Pool
	batchSize   int
	progressOut io.Writer
	logger      *slog.Logger

	// insertMu serializes inserts so two workers holding documents with
	// the same signature race on the duplicate check, not the commit.
	insertMu sync.Mutex
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer) error

// WithPoolSize sets the worker pool size for concurrent file processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) ImporterOption {
	return func(i *Importer) error {
		if size < 1 {
			size = 1
		}

		if i.pool != nil {
			i.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		i.pool = pool
		return nil
	}
}

// WithProgressOutput directs progress reporting to w.
// Default is io.Discard.
func WithProgressOutput(w io.Writer) ImporterOption {
	return func(i *Importer) error {
		if w == nil {
			w = io.Discard
		}
		i.progressOut = w
		return nil
	}
}

// WithImporterLogger sets a custom logger.
// Default is slog.Default().
func WithImporterLogger(logger *slog.Logger) ImporterOption {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewImporter creates a new bulk importer.
func NewImporter(
	library storage.LibraryRepository,
	checkpoints storage.CheckpointRepository,
	opts ...ImporterOption,
) (*Importer, error) {
	if library == nil {
		return nil, ErrLibraryRepositoryRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	i := &Importer{
		library:     library,
		checkpoints: checkpoints,
		pool:        pool,
		batchSize:   32,
		progressOut: io.Discard,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(i); optErr != nil {
			i.Release()
			return nil, optErr
		}
	}

	return i, nil
}

// Run imports all score document files (*.json) under dir.
//
// Files are processed in deterministic order in checkpointed batches: an
// interrupted run resumes after the last completed batch. Duplicates and
// unreadable files are counted, not fatal. The checkpoint is cleared when
// the whole directory has been processed.
func (i *Importer) Run(ctx context.Context, dir string) (*ImportReport, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	report := &ImportReport{}
	start := i.resumePosition(ctx, len(files))
	report.Resumed = start

	tracker := NewProgressTracker(i.progressOut, len(files), i.batchSize)
	tracker.Start()
	defer tracker.Finish()

	var imported, skipped, failed atomic.Int64

	for batchStart := start; batchStart < len(files); batchStart += i.batchSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		batchEnd := batchStart + i.batchSize
		if batchEnd > len(files) {
			batchEnd = len(files)
		}

		var wg sync.WaitGroup
		for _, path := range files[batchStart:batchEnd] {
			wg.Add(1)
			submitErr := i.pool.Submit(func() {
				defer wg.Done()
				defer tracker.Step()

				switch err := i.importOne(ctx, path); {
				case err == nil:
					imported.Add(1)
				case errors.Is(err, storage.ErrDuplicateContent):
					i.logger.Debug("skipping duplicate", "path", path)
					skipped.Add(1)
				default:
					i.logger.Warn("failed to import file", "path", path, "err", err)
					failed.Add(1)
				}
			})
			if submitErr != nil {
				wg.Done()
				tracker.Step()
				failed.Add(1)
			}
		}
		wg.Wait()

		if err := i.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
			Stage:    checkpointStage,
			Position: batchEnd,
		}); err != nil {
			i.logger.Warn("failed to save import checkpoint", "position", batchEnd, "err", err)
		}
	}

	if err := i.checkpoints.ClearCheckpoint(ctx, checkpointStage); err != nil {
		i.logger.Warn("failed to clear import checkpoint", "err", err)
	}

	report.Imported = int(imported.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())

	i.logger.Info("import complete",
		"files", len(files),
		"imported", report.Imported,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"resumed", report.Resumed)
	return report, nil
}

// importOne reads, validates, and inserts a single score document file.
func (i *Importer) importOne(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file importFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if err := core.ValidateDocument(&file.Score); err != nil {
		return err
	}

	item := &core.LibraryItem{
		Title:        file.Title,
		Composer:     file.Composer,
		KeySignature: file.Score.Key,
		Tempo:        file.Score.Tempo,
		MeasureCount: len(file.Score.Measures),
		Path:         path,
		Provenance:   core.ProvenanceLocalImport,
		Signature:    core.SignatureFromDocument(&file.Score),
		Tags:         file.Tags,
	}

	i.insertMu.Lock()
	defer i.insertMu.Unlock()
	_, err = i.library.Insert(ctx, item)
	return err
}

// resumePosition returns the file index to resume from, clamped to the
// current file count. A missing or unreadable checkpoint starts from zero.
func (i *Importer) resumePosition(ctx context.Context, fileCount int) int {
	cp, err := i.checkpoints.GetCheckpoint(ctx, checkpointStage)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			i.logger.Warn("failed to read import checkpoint", "err", err)
		}
		return 0
	}

	if cp.Position < 0 || cp.Position > fileCount {
		return 0
	}

	i.logger.Info("resuming import from checkpoint", "position", cp.Position)
	return cp.Position
}

// Release releases the worker pool.
// The importer should not be used after calling Release.
func (i *Importer) Release() {
	if i.pool != nil {
		i.pool.Release()
	}
}
