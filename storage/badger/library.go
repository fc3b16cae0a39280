package badger

import (
	"context"
	"slices"
	"time"

	"github.com/clefworks/scorebase/core"
	"github.com/clefworks/scorebase/storage"
	"github.com/dgraph-io/badger/v4"
)

// LibraryRepository implements storage.LibraryRepository for BadgerDB.
//
// Items are stored under an ID key with a secondary index from content
// signature to ID, so lookups by either are single point reads. Deletes
// remove both keys, so iteration never sees tombstoned entries.
type LibraryRepository struct {
	backend *Backend
}

var _ storage.LibraryRepository = (*LibraryRepository)(nil)

// NewLibraryRepository creates a new LibraryRepository.
func NewLibraryRepository(backend *Backend) *LibraryRepository {
	return &LibraryRepository{backend: backend}
}

// Close releases repository resources.
func (r *LibraryRepository) Close() error {
	return nil
}

// Insert adds a new item and returns its identifier.
func (r *LibraryRepository) Insert(ctx context.Context, item *core.LibraryItem) (core.ID, error) {
	if err := core.ValidateLibraryItem(item); err != nil {
		return 0, err
	}

	item.Id = core.IDFromSignature(item.Signature)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		sigKey := makeSignatureKey(item.Signature)
		if _, err := tx.Get(sigKey); err == nil {
			return storage.ErrDuplicateContent
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		item.InsertedAt = time.Now().UTC()
		item.UpdatedAt = item.InsertedAt

		if err := tx.Set(makeItemKey(item.Id), storage.MarshalLibraryItem(item)); err != nil {
			return err
		}
		if err := tx.Set(sigKey, storage.MarshalID(item.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return item.Id, nil
}

// Update replaces the metadata fields of an existing item in place.
// The identifier, content signature, and InsertedAt timestamp are preserved.
func (r *LibraryRepository) Update(ctx context.Context, item *core.LibraryItem) error {
	if err := core.ValidateLibraryItem(item); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := r.readItemBySignature(tx, item.Signature)
		if err != nil {
			return err
		}

		item.Id = old.Id
		item.InsertedAt = old.InsertedAt
		item.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makeItemKey(item.Id), storage.MarshalLibraryItem(item)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves a single item by identifier.
func (r *LibraryRepository) Get(ctx context.Context, id core.ID) (*core.LibraryItem, error) {
	var result *core.LibraryItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := readItem(tx, makeItemKey(id))
		if err != nil {
			return err
		}
		if item == nil {
			return storage.ErrNotFound
		}
		result = item
		return nil
	}, false)
	return result, err
}

// GetBySignature retrieves a single item by content signature.
func (r *LibraryRepository) GetBySignature(ctx context.Context, signature string) (*core.LibraryItem, error) {
	var result *core.LibraryItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := r.readItemBySignature(tx, signature)
		if err != nil {
			return err
		}
		result = item
		return nil
	}, false)
	return result, err
}

// Delete removes items by their identifiers, including signature index entries.
func (r *LibraryRepository) Delete(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeItemKey(id)
			item, err := readItem(tx, key)
			if err != nil {
				return err
			}
			if item == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeSignatureKey(item.Signature)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// List returns all items ordered by identifier.
func (r *LibraryRepository) List(ctx context.Context) ([]*core.LibraryItem, error) {
	var results []*core.LibraryItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var item *core.LibraryItem
			err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalLibraryItem(val)
				return err
			})
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Item keys are decimal strings, so iteration order is lexicographic.
	slices.SortFunc(results, func(a, b *core.LibraryItem) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
	return results, nil
}

// Count returns the number of stored items.
func (r *LibraryRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readItem reads a library item from the transaction.
// Returns nil without error when the key is absent.
func readItem(tx *badger.Txn, key []byte) (*core.LibraryItem, error) {
	txItem, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var item *core.LibraryItem
	err = txItem.Value(func(val []byte) error {
		var unmarshalErr error
		item, unmarshalErr = storage.UnmarshalLibraryItem(val)
		return unmarshalErr
	})
	return item, err
}

// readItemBySignature resolves the signature index and reads the item.
// Returns storage.ErrNotFound when the signature is unknown.
func (r *LibraryRepository) readItemBySignature(tx *badger.Txn, signature string) (*core.LibraryItem, error) {
	txItem, err := tx.Get(makeSignatureKey(signature))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var id core.ID
	if err := txItem.Value(func(val []byte) error {
		var unmarshalErr error
		id, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	}); err != nil {
		return nil, err
	}

	item, err := readItem(tx, makeItemKey(id))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, storage.ErrNotFound
	}
	return item, nil
}
