package runtime

import (
	"github.com/modcore/modcore/state"
	"github.com/modcore/modcore/subcall"
	"github.com/modcore/modcore/types"
)

// TxContext is the environment one transaction's handler runs in. Events
// and messages emitted by the handler are buffered here and only flushed
// into the enclosing Context if the transaction succeeds, so a failed
// transaction leaves no trace.
type TxContext struct {
	rt       *Context
	meter    *GasMeter
	caller   types.CallerAddress
	internal bool
	msgCap   uint32
	events   []types.Event
	messages []types.Message
}

// Caller returns the address the transaction runs on behalf of.
func (tc *TxContext) Caller() types.CallerAddress { return tc.caller }

// IsInternal reports whether the transaction was synthesized by the runtime
// on behalf of an already-authorized caller.
func (tc *TxContext) IsInternal() bool { return tc.internal }

// Mode returns the execution mode of the enclosing context.
func (tc *TxContext) Mode() Mode { return tc.rt.mode }

// Store returns the enclosing context's write overlay. Writes made through
// it are subject to the transaction's store-level rollback.
func (tc *TxContext) Store() *state.OverlayStore { return tc.rt.store }

// UseGas charges gas against the transaction's meter.
func (tc *TxContext) UseGas(amount uint64) error {
	return tc.meter.UseGas(amount)
}

// RemainingGas returns the gas left in the transaction's meter.
func (tc *TxContext) RemainingGas() uint64 {
	return tc.meter.Remaining()
}

// EmitEvent buffers an event for flushing on success.
func (tc *TxContext) EmitEvent(ev types.Event) {
	tc.events = append(tc.events, ev)
}

// EmitMessage buffers an outbound message, enforcing the transaction's
// message quota.
func (tc *TxContext) EmitMessage(msg types.Message) error {
	if tc.RemainingMessages() == 0 {
		return ErrMessageQuotaExceeded
	}
	tc.messages = append(tc.messages, msg)
	return nil
}

// RemainingMessages reports how many outbound messages the transaction may
// still emit. Messages emitted by committed nested calls count against the
// quota too.
func (tc *TxContext) RemainingMessages() uint32 {
	return tc.msgCap - uint32(len(tc.messages))
}

// Stack returns the nested call stack of the execution thread.
func (tc *TxContext) Stack() *subcall.Stack { return tc.rt.stack }

// WithChild forks a child execution context inheriting the transaction's
// remaining message quota and runs fn in it. Effects the child commits are
// absorbed into this transaction's buffers.
func (tc *TxContext) WithChild(fn func(child subcall.Child)) {
	child := tc.rt.fork(tc, tc.RemainingMessages())
	fn(child)
}

// absorb implements effectSink. The absorbed messages count against the
// transaction's quota through RemainingMessages.
func (tc *TxContext) absorb(st types.State) {
	tc.events = append(tc.events, st.Events...)
	tc.messages = append(tc.messages, st.Messages...)
}

var _ subcall.Context = (*TxContext)(nil)
var _ effectSink = (*TxContext)(nil)
