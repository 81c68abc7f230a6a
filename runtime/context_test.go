package runtime

import (
	"bytes"
	"testing"

	"github.com/modcore/modcore/state"
	"github.com/modcore/modcore/types"
)

func TestContext_ExecuteTxCommits(t *testing.T) {
	d := NewDispatcher()
	d.MustRegister("kv.Put", func(tc *TxContext, body []byte) ([]byte, error) {
		tc.Store().Set([]byte("key"), body)
		return nil, nil
	})
	c := newTestContext(t, d)

	res, _ := c.ExecuteTx(internalTx("kv.Put", []byte("value"), 100, 0))
	if !res.IsSuccess() {
		t.Fatalf("execute: %s", res)
	}
	if got := c.Store().Get([]byte("key")); !bytes.Equal(got, []byte("value")) {
		t.Fatalf("write missing after commit: %q", got)
	}
}

func TestContext_ExecuteTxRollsBackOnFailure(t *testing.T) {
	d := NewDispatcher()
	d.MustRegister("kv.PutThenFail", func(tc *TxContext, body []byte) ([]byte, error) {
		tc.Store().Set([]byte("key"), body)
		return nil, NewModuleError("kv", 1, "deliberate failure")
	})
	c := newTestContext(t, d)

	res, _ := c.ExecuteTx(internalTx("kv.PutThenFail", []byte("value"), 100, 0))
	if res.IsSuccess() {
		t.Fatal("expected failure")
	}
	if got := c.Store().Get([]byte("key")); got != nil {
		t.Fatalf("failed transaction's write survived: %q", got)
	}
}

func TestContext_CommitFlushesToBacking(t *testing.T) {
	backing := state.NewMemStore()
	d := NewDispatcher()
	d.MustRegister("emit.All", func(tc *TxContext, _ []byte) ([]byte, error) {
		tc.Store().Set([]byte("k"), []byte("v"))
		tc.EmitEvent(types.Event{Module: "emit", Code: 1})
		return nil, tc.EmitMessage(types.Message{Method: "consensus.Withdraw"})
	})
	c := NewContext(ModeExecute, backing, d, 8)

	if res, _ := c.ExecuteTx(internalTx("emit.All", nil, 100, 8)); !res.IsSuccess() {
		t.Fatalf("execute: %s", res)
	}
	if got := backing.Get([]byte("k")); got != nil {
		t.Fatal("write reached backing before context commit")
	}

	st := c.Commit()
	if got := backing.Get([]byte("k")); !bytes.Equal(got, []byte("v")) {
		t.Fatalf("backing after commit = %q, want %q", got, "v")
	}
	if len(st.Events) != 1 || len(st.Messages) != 1 {
		t.Fatalf("state = %+v", st)
	}
	// The context is drained by Commit.
	if len(c.Events()) != 0 || len(c.Messages()) != 0 {
		t.Fatal("context retained effects after commit")
	}
}

func TestMode_String(t *testing.T) {
	cases := map[Mode]string{
		ModeExecute:  "execute",
		ModeCheck:    "check",
		ModeSimulate: "simulate",
		Mode(9):      "unknown",
	}
	for m, want := range cases {
		if got := m.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", m, got, want)
		}
	}
}
