package storage

import (
	"context"

	"github.com/clefworks/scorebase/core"
)

// LibraryRepository provides operations for managing library item records.
// Implementations must be thread-safe and support concurrent readers;
// writes happen out of band from query-time search.
type LibraryRepository interface {
	// Insert adds a new item and returns its identifier.
	// The identifier is derived from the content signature before storing.
	// Returns ErrDuplicateContent if an item with the same content
	// signature already exists.
	Insert(ctx context.Context, item *core.LibraryItem) (core.ID, error)

	// Update replaces the metadata fields of an existing item in place.
	// The identifier, signature, and InsertedAt timestamp are preserved.
	// Returns ErrNotFound if no item with the signature exists.
	Update(ctx context.Context, item *core.LibraryItem) error

	// Get retrieves a single item by identifier.
	// Returns ErrNotFound if the item doesn't exist.
	Get(ctx context.Context, id core.ID) (*core.LibraryItem, error)

	// GetBySignature retrieves a single item by content signature.
	// Returns ErrNotFound if no item with the signature exists.
	GetBySignature(ctx context.Context, signature string) (*core.LibraryItem, error)

	// Delete removes items by their identifiers, including index entries.
	// Returns ErrNotFound if any item doesn't exist.
	Delete(ctx context.Context, ids ...core.ID) error

	// List returns all items ordered by identifier.
	// Deleted items are never included.
	List(ctx context.Context) ([]*core.LibraryItem, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}

// CheckpointRepository persists import progress so interrupted bulk
// imports can resume instead of reconverting everything.
type CheckpointRepository interface {
	// SaveCheckpoint stores the checkpoint for a stage, replacing any
	// previous one.
	SaveCheckpoint(ctx context.Context, cp *core.Checkpoint) error

	// GetCheckpoint retrieves the checkpoint for a stage.
	// Returns ErrNotFound if no checkpoint exists.
	GetCheckpoint(ctx context.Context, stage string) (*core.Checkpoint, error)

	// ClearCheckpoint removes the checkpoint for a stage. Clearing a
	// missing checkpoint is not an error.
	ClearCheckpoint(ctx context.Context, stage string) error
}
