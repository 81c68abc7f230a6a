package state

import (
	"bytes"
	"testing"
)

func newBadgerTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return s
}

func TestBadgerStore_Basic(t *testing.T) {
	s := newBadgerTestStore(t)

	if got := s.Get([]byte("k")); got != nil {
		t.Fatalf("absent key returned %q", got)
	}

	s.Set([]byte("k"), []byte("v"))
	if got := s.Get([]byte("k")); !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get = %q, want %q", got, "v")
	}

	s.Delete([]byte("k"))
	if got := s.Get([]byte("k")); got != nil {
		t.Fatalf("deleted key returned %q", got)
	}

	if err := s.Err(); err != nil {
		t.Fatalf("unexpected retained error: %v", err)
	}
}

func TestBadgerStore_AsOverlayParent(t *testing.T) {
	s := newBadgerTestStore(t)
	s.Set([]byte("a"), []byte("1"))

	o := NewOverlayStore(s)
	o.Set([]byte("b"), []byte("2"))
	o.Delete([]byte("a"))

	snap := o.Snapshot()
	o.Set([]byte("b"), []byte("junk"))
	o.RevertToSnapshot(snap)

	o.Commit()

	if got := s.Get([]byte("a")); got != nil {
		t.Fatalf("a survived committed delete: %q", got)
	}
	if got := s.Get([]byte("b")); !bytes.Equal(got, []byte("2")) {
		t.Fatalf("b = %q, want %q", got, "2")
	}
}
