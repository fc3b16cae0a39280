package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
)

// Uploader converts a single sheet file and adds it to the library with
// user-uploaded provenance.
type Uploader struct {
	library      storage.LibraryRepository
	converter    ai.ScoreConverter
	documentsDir string
	maxAttempts  int
	baseDelay    time.Duration
	logger       *slog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader) error

// WithDocumentsDir sets the directory where converted score documents are
// persisted. Default is the process working directory.
func WithDocumentsDir(dir string) UploaderOption {
	return func(u *Uploader) error {
		u.documentsDir = dir
		return nil
	}
}

// WithConversionRetry tunes the bounded retry applied to transient
// conversion failures. Defaults: 3 attempts, 2s base delay.
func WithConversionRetry(maxAttempts int, baseDelay time.Duration) UploaderOption {
	return func(u *Uploader) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		u.maxAttempts = maxAttempts
		u.baseDelay = baseDelay
		return nil
	}
}

// WithUploaderLogger sets a custom logger.
// Default is slog.Default().
func WithUploaderLogger(logger *slog.Logger) UploaderOption {
	return func(u *Uploader) error {
		if logger == nil {
			logger = slog.Default()
		}
		u.logger = logger
		return nil
	}
}

// NewUploader creates a new uploader.
func NewUploader(
	library storage.LibraryRepository,
	converter ai.ScoreConverter,
	opts ...UploaderOption,
) (*Uploader, error) {
	if library == nil {
		return nil, ErrLibraryRepositoryRequired
	}
	if converter == nil {
		return nil, ErrConverterRequired
	}

	u := &Uploader{
		library:     library,
		converter:   converter,
		maxAttempts: 3,
		baseDelay:   2 * time.Second,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// Upload converts the sheet at path and inserts the result.
//
// Transient remote failures are retried with bounded backoff; format and
// conversion errors are not. The converted document is persisted under the
// documents directory named by its content signature, and the returned item
// references it.
func (u *Uploader) Upload(ctx context.Context, path, title, composer string) (*core.LibraryItem, error) {
	var doc *core.ScoreDocument

	err := RetryWithBackoff(ctx, func() error {
		var convErr error
		doc, convErr = u.converter.Convert(ctx, path)
		if convErr != nil && !transient(convErr) {
			return Permanent(convErr)
		}
		return convErr
	}, u.maxAttempts, u.baseDelay)
	if err != nil {
		return nil, err
	}

	signature := core.SignatureFromDocument(doc)
	docPath, err := u.persist(doc, signature)
	if err != nil {
		return nil, err
	}

	item := &core.LibraryItem{
		Title:        title,
		Composer:     composer,
		KeySignature: doc.Key,
		Tempo:        doc.Tempo,
		MeasureCount: len(doc.Measures),
		Path:         docPath,
		Provenance:   core.ProvenanceUserUpload,
		Signature:    signature,
	}

	id, err := u.library.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	item.Id = id

	u.logger.Info("sheet uploaded",
		"id", id,
		"title", title,
		"measures", len(doc.Measures))
	return item, nil
}

// persist writes the converted document as JSON named by its signature.
func (u *Uploader) persist(doc *core.ScoreDocument, signature string) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(u.documentsDir, signature+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("persisting document: %w", err)
	}
	return path, nil
}

// transient reports whether a conversion error is worth retrying.
func transient(err error) bool {
	return errors.Is(err, ai.ErrRemoteUnavailable) || errors.Is(err, ai.ErrTimeout)
}
