package record

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// SpillStore writes loaded Records to an on-disk BadgerDB instance and
// reads them back. Keys are "row:" followed by the zero-padded decimal
// row index; values are JSON-encoded Records. A SpillStore is write-once,
// read-many: records are never mutated after Spill. Load materializes
// every row into an in-memory Set, so the records are fully resident
// again once they have been read back.
type SpillStore struct {
	db *badger.DB
}

// OpenSpillStore opens (creating if absent) a BadgerDB at dir.
func OpenSpillStore(dir string) (*SpillStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open spill store: %w", err)
	}
	return &SpillStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SpillStore) Close() error {
	return s.db.Close()
}

// Spill writes every record of set to the store, keyed by row index.
func (s *SpillStore) Spill(set *Set) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for idx, rec := range set.Rows {
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal row %d: %w", idx, err)
			}
			if err := txn.Set(rowKey(idx), data); err != nil {
				return fmt.Errorf("spill row %d: %w", idx, err)
			}
		}
		return nil
	})
}

// Load reconstructs a Set from the store, in row-index order. count is
// the number of rows previously spilled (the caller is expected to track
// this, the same way the in-memory Set tracks its own length).
func (s *SpillStore) Load(count int) (*Set, error) {
	set := &Set{Rows: make([]Record, count)}
	err := s.db.View(func(txn *badger.Txn) error {
		for idx := 0; idx < count; idx++ {
			item, err := txn.Get(rowKey(idx))
			if err != nil {
				return fmt.Errorf("load row %d: %w", idx, err)
			}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &set.Rows[idx])
			}); err != nil {
				return fmt.Errorf("decode row %d: %w", idx, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func rowKey(idx int) []byte {
	return []byte(fmt.Sprintf("row:%010d", idx))
}
