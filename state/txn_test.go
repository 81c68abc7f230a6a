package state

import (
	"bytes"
	"testing"
)

func TestWithTransaction_Commit(t *testing.T) {
	o := NewOverlayStore(NewMemStore())

	got := WithTransaction(o, func() TxnResult[int] {
		o.Set([]byte("k"), []byte("v"))
		return CommitWith(42)
	})

	if got != 42 {
		t.Fatalf("payload = %d, want 42", got)
	}
	if v := o.Get([]byte("k")); !bytes.Equal(v, []byte("v")) {
		t.Fatalf("committed write lost: %q", v)
	}
}

func TestWithTransaction_Rollback(t *testing.T) {
	o := NewOverlayStore(NewMemStore())
	o.Set([]byte("keep"), []byte("1"))

	got := WithTransaction(o, func() TxnResult[string] {
		o.Set([]byte("keep"), []byte("2"))
		o.Set([]byte("drop"), []byte("x"))
		return RollbackWith("failed")
	})

	// The payload comes back even when the writes do not.
	if got != "failed" {
		t.Fatalf("payload = %q, want %q", got, "failed")
	}
	if v := o.Get([]byte("keep")); !bytes.Equal(v, []byte("1")) {
		t.Fatalf("pre-transaction write damaged: %q", v)
	}
	if v := o.Get([]byte("drop")); v != nil {
		t.Fatalf("rolled-back write visible: %q", v)
	}
}

func TestWithTransaction_Nested(t *testing.T) {
	o := NewOverlayStore(NewMemStore())

	WithTransaction(o, func() TxnResult[struct{}] {
		o.Set([]byte("outer"), []byte("1"))

		WithTransaction(o, func() TxnResult[struct{}] {
			o.Set([]byte("inner"), []byte("2"))
			return RollbackWith(struct{}{})
		})

		return CommitWith(struct{}{})
	})

	if v := o.Get([]byte("outer")); !bytes.Equal(v, []byte("1")) {
		t.Fatalf("outer write lost: %q", v)
	}
	if v := o.Get([]byte("inner")); v != nil {
		t.Fatalf("inner rollback leaked: %q", v)
	}
}
