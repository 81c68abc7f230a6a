// context.go implements the execution contexts. A Context is the
// environment one batch of transactions (or one nested call) executes in:
// it owns a write overlay over its backing store, accumulates emitted
// events and outbound messages and tracks how many messages its subtree may
// still emit. Child contexts forked for nested calls commit their effects
// back into the transaction that spawned them.
package runtime

import (
	"github.com/modcore/modcore/log"
	"github.com/modcore/modcore/state"
	"github.com/modcore/modcore/subcall"
	"github.com/modcore/modcore/types"
)

// effectSink receives the effects of a committing child context.
type effectSink interface {
	absorb(st types.State)
}

// Context is the execution environment of a batch or of a nested call.
type Context struct {
	mode       Mode
	store      *state.OverlayStore
	dispatcher *Dispatcher
	stack      *subcall.Stack
	parent     effectSink
	msgQuota   uint32
	events     []types.Event
	messages   []types.Message
	logger     *log.Logger
}

// NewContext creates a root execution context over backing. msgQuota bounds
// how many outbound messages the whole execution may emit.
func NewContext(mode Mode, backing state.Store, dispatcher *Dispatcher, msgQuota uint32) *Context {
	return &Context{
		mode:       mode,
		store:      state.NewOverlayStore(backing),
		dispatcher: dispatcher,
		stack:      subcall.NewStack(),
		msgQuota:   msgQuota,
		logger:     log.Default().Module("runtime"),
	}
}

// Mode returns the context's execution mode.
func (c *Context) Mode() Mode { return c.mode }

// Store returns the context's write overlay.
func (c *Context) Store() *state.OverlayStore { return c.store }

// Events returns the events accumulated so far.
func (c *Context) Events() []types.Event { return c.events }

// Messages returns the outbound messages accumulated so far.
func (c *Context) Messages() []types.Message { return c.messages }

// RemainingMessages reports how many outbound messages this context's
// subtree may still emit.
func (c *Context) RemainingMessages() uint32 { return c.msgQuota }

// emitEvents records events in the context.
func (c *Context) emitEvents(events []types.Event) {
	c.events = append(c.events, events...)
}

// emitMessages records outbound messages, consuming quota. The caller must
// have verified the quota beforehand.
func (c *Context) emitMessages(msgs []types.Message) {
	c.messages = append(c.messages, msgs...)
	c.msgQuota -= uint32(len(msgs))
}

// fork creates a child context for a nested call. The child layers its own
// overlay on top of this context's store, shares the call stack of the
// execution thread and inherits the message quota sink has left.
func (c *Context) fork(sink effectSink, msgQuota uint32) *Context {
	return &Context{
		mode:       c.mode,
		store:      state.NewOverlayStore(c.store),
		dispatcher: c.dispatcher,
		stack:      c.stack,
		parent:     sink,
		msgQuota:   msgQuota,
		logger:     c.logger,
	}
}

// DispatchCall executes tx in this context and returns its result together
// with the gas remaining out of the transaction's limit.
func (c *Context) DispatchCall(tx *types.Transaction) (types.CallResult, uint64) {
	return c.dispatcher.DispatchCall(c, tx)
}

// ExecuteTx dispatches tx inside a nested store transaction, so a failed
// call leaves no storage writes behind. The gas charged before the failure
// stays consumed either way.
func (c *Context) ExecuteTx(tx *types.Transaction) (types.CallResult, uint64) {
	type outcome struct {
		result    types.CallResult
		remaining uint64
	}
	out := state.WithTransaction(c.store, func() state.TxnResult[outcome] {
		result, remaining := c.dispatcher.DispatchCall(c, tx)
		if result.IsSuccess() {
			return state.CommitWith(outcome{result: result, remaining: remaining})
		}
		return state.RollbackWith(outcome{result: result, remaining: remaining})
	})
	return out.result, out.remaining
}

// Commit flushes the context's overlay into its backing store, hands its
// accumulated effects to the parent sink (if any) and returns them. The
// context is reset to empty afterwards.
func (c *Context) Commit() types.State {
	c.store.Commit()

	st := types.State{Events: c.events, Messages: c.messages}
	c.events = nil
	c.messages = nil
	if c.parent != nil {
		c.parent.absorb(st)
	}
	return st
}

var _ subcall.Child = (*Context)(nil)
