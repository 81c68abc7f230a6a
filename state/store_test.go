package state

import (
	"bytes"
	"testing"
)

func TestMemStore_Basic(t *testing.T) {
	m := NewMemStore()

	if got := m.Get([]byte("k")); got != nil {
		t.Fatalf("absent key returned %q", got)
	}

	m.Set([]byte("k"), []byte("v"))
	if got := m.Get([]byte("k")); !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get = %q, want %q", got, "v")
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}

	m.Delete([]byte("k"))
	if got := m.Get([]byte("k")); got != nil {
		t.Fatalf("deleted key returned %q", got)
	}
	// Deleting again must not panic.
	m.Delete([]byte("k"))
}

func TestMemStore_DefensiveCopies(t *testing.T) {
	m := NewMemStore()
	val := []byte("original")
	m.Set([]byte("k"), val)

	val[0] = 'X'
	if got := m.Get([]byte("k")); !bytes.Equal(got, []byte("original")) {
		t.Fatalf("caller mutation leaked into store: %q", got)
	}

	got := m.Get([]byte("k"))
	got[0] = 'Y'
	if again := m.Get([]byte("k")); !bytes.Equal(again, []byte("original")) {
		t.Fatalf("returned slice aliases store: %q", again)
	}
}
