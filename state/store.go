// Package state provides the runtime's key-value storage: an in-memory
// store, a journaled overlay supporting snapshot/revert and nested store
// transactions, and a badger-backed persistent backend.
package state

// Store is a mutable key-value store. A nil return from Get means the key
// is absent; stored values are never nil.
type Store interface {
	// Get returns the value stored under key, or nil if absent.
	Get(key []byte) []byte
	// Set stores value under key, replacing any previous value.
	Set(key, value []byte)
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key []byte)
}

// MemStore is a map-backed Store. Not safe for concurrent use.
type MemStore struct {
	data map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get returns the value stored under key, or nil if absent.
func (m *MemStore) Get(key []byte) []byte {
	v, ok := m.data[string(key)]
	if !ok {
		return nil
	}
	return copyBytes(v)
}

// Set stores value under key.
func (m *MemStore) Set(key, value []byte) {
	m.data[string(key)] = copyBytes(value)
}

// Delete removes key.
func (m *MemStore) Delete(key []byte) {
	delete(m.data, string(key))
}

// Len returns the number of stored keys.
func (m *MemStore) Len() int {
	return len(m.data)
}

// copyBytes returns a copy of the input byte slice. A nil input stays nil.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
