package badger

import (
	"context"
	"time"

	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
	"github.com/dgraph-io/badger/v4"
)

// CheckpointRepository implements storage.CheckpointRepository for BadgerDB.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a new CheckpointRepository.
func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{backend: backend}
}

// SaveCheckpoint stores the checkpoint for a stage, replacing any previous one.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, cp *core.Checkpoint) error {
	cp.UpdatedAt = time.Now().UTC()
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCheckpointKey(cp.Stage), storage.MarshalCheckpoint(cp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetCheckpoint retrieves the checkpoint for a stage.
func (r *CheckpointRepository) GetCheckpoint(ctx context.Context, stage string) (*core.Checkpoint, error) {
	var result *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(stage))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalCheckpoint(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ClearCheckpoint removes the checkpoint for a stage.
func (r *CheckpointRepository) ClearCheckpoint(ctx context.Context, stage string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeCheckpointKey(stage)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
