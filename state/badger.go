package state

import (
	badger "github.com/dgraph-io/badger/v3"
)

// BadgerStore is a persistent Store backed by a badger database. Because
// the Store interface is error-free, I/O errors are retained and exposed
// through Err; callers that need durability guarantees should check it
// before committing higher-level state.
type BadgerStore struct {
	db  *badger.DB
	err error
}

// OpenBadger opens (or creates) a badger-backed store at path.
func OpenBadger(path string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadgerInMemory opens an ephemeral in-memory badger store, primarily
// for tests.
func OpenBadgerInMemory() (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the value stored under key, or nil if absent.
func (s *BadgerStore) Get(key []byte) []byte {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	switch err {
	case nil:
		return out
	case badger.ErrKeyNotFound:
		return nil
	default:
		s.err = err
		return nil
	}
}

// Set stores value under key.
func (s *BadgerStore) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(copyBytes(key), copyBytes(value))
	}); err != nil {
		s.err = err
	}
}

// Delete removes key.
func (s *BadgerStore) Delete(key []byte) {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(copyBytes(key))
	}); err != nil {
		s.err = err
	}
}

// Err returns the first I/O error encountered since the last call, and
// clears it.
func (s *BadgerStore) Err() error {
	err := s.err
	s.err = nil
	return err
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
