// Package subcall implements nested call dispatch: one executing call can
// synchronously invoke another method as if it were a fresh transaction,
// subject to a recursion ceiling, a gas allocation carved out of the parent
// budget and validator capabilities registered by calls further up the
// chain. Storage writes and emitted effects of a failed nested call are
// rolled back and never observed by the parent.
package subcall

import (
	"github.com/modcore/modcore/log"
	"github.com/modcore/modcore/metrics"
	"github.com/modcore/modcore/state"
	"github.com/modcore/modcore/types"
)

var (
	logger = log.Default().Module("subcall")

	callsMeter    = metrics.DefaultRegistry.Counter("subcall/calls")
	failuresMeter = metrics.DefaultRegistry.Counter("subcall/failures")
	depthGauge    = metrics.DefaultRegistry.Gauge("subcall/depth")
)

// Validator decides whether a prospective nested call may proceed. A
// validator supplied to Call stays active for the duration of that call and
// is consulted for every deeper call issued beneath it.
type Validator interface {
	// Validate inspects the call metadata and returns a non-nil error to
	// reject it.
	Validate(info SubcallInfo) error
}

// AllowAllValidator permits every nested call.
type AllowAllValidator struct{}

// Validate implements Validator.
func (AllowAllValidator) Validate(SubcallInfo) error { return nil }

// SubcallInfo describes a nested call to be dispatched.
type SubcallInfo struct {
	// Caller is the address on whose behalf the call is performed.
	Caller types.CallerAddress
	// Method is the method to invoke.
	Method string
	// Body is the encoded method argument.
	Body []byte
	// MaxDepth is the recursion ceiling this call declares for itself: the
	// call fails if the current depth already reaches it.
	MaxDepth uint16
	// MaxGas is the gas allocation available to the call and everything
	// beneath it.
	MaxGas uint64
}

// SubcallResult is the outcome of a completed nested call.
type SubcallResult struct {
	// State holds the effects the call committed. Empty when the call
	// failed and rolled back.
	State types.State
	// CallResult is the dispatched call's own result.
	CallResult types.CallResult
	// GasUsed is the gas actually consumed out of MaxGas.
	GasUsed uint64
}

// Context is the execution environment a nested call is issued from.
type Context interface {
	// RemainingMessages reports how many outbound messages the caller may
	// still emit; the child's quota is capped by it.
	RemainingMessages() uint32
	// Stack returns the call stack tracker of this execution thread.
	Stack() *Stack
	// WithChild forks a child execution environment, runs fn inside it and
	// tears the child down when fn returns.
	WithChild(fn func(child Child))
}

// Child is a forked execution environment a synthesized transaction runs in.
type Child interface {
	// Store returns the child's write overlay.
	Store() *state.OverlayStore
	// DispatchCall executes tx and returns its result together with the
	// gas remaining out of the transaction's gas limit. Effects emitted
	// during a failed dispatch must be discarded by the implementation.
	DispatchCall(tx *types.Transaction) (types.CallResult, uint64)
	// Commit merges the child's effects into its parent and returns them.
	Commit() types.State
}

// Depth returns the current nested call depth of ctx.
func Depth(ctx Context) uint16 {
	return ctx.Stack().Depth()
}

type dispatchOutcome struct {
	result    types.CallResult
	remaining uint64
}

// Call performs a nested call described by info on behalf of ctx.
//
// The supplied validator is run against info first, then the call is checked
// against the recursion ceiling and every validator registered by calls
// still active on the stack. Any of these setup checks failing aborts with
// an error and no observable side effect. Once setup passes, the validator
// joins the stack for the duration of the call and a transaction targeting
// info.Method is synthesized and dispatched in a child environment. A failed
// dispatch is not an error of Call itself: its storage writes and effects
// are rolled back and the failure is reported inside the returned result,
// with gas still charged for the work performed.
func Call(ctx Context, info SubcallInfo, validator Validator) (*SubcallResult, error) {
	// The new validator gets the first say, before any stack mutation.
	if err := validator.Validate(info); err != nil {
		failuresMeter.Inc()
		return nil, err
	}

	stack := ctx.Stack()
	if depth := stack.Depth(); depth >= info.MaxDepth {
		failuresMeter.Inc()
		return nil, &CallDepthExceededError{Attempted: depth + 1, Limit: info.MaxDepth}
	}
	if err := stack.runValidators(info); err != nil {
		failuresMeter.Inc()
		return nil, err
	}
	stack.push(stackEntry{validator: validator})
	depthGauge.Set(int64(stack.Depth()))
	defer func() {
		stack.pop()
		depthGauge.Set(int64(stack.Depth()))
	}()

	callsMeter.Inc()
	logger.Debug("dispatching nested call", "method", info.Method, "depth", stack.Depth(), "max_gas", info.MaxGas)

	// The child may not emit more messages than the caller has left.
	remainingMessages := ctx.RemainingMessages()

	var (
		out  dispatchOutcome
		snap types.State
	)
	ctx.WithChild(func(child Child) {
		tx := internalTransaction(info, remainingMessages)

		out = state.WithTransaction(child.Store(), func() state.TxnResult[dispatchOutcome] {
			result, remaining := child.DispatchCall(tx)
			if result.IsSuccess() {
				return state.CommitWith(dispatchOutcome{result: result, remaining: remaining})
			}
			// Storage writes of a failed dispatch are reverted.
			return state.RollbackWith(dispatchOutcome{result: result, remaining: remaining})
		})

		// A no-op after a failed dispatch since the child accumulated no
		// effects, but still required to tear the overlay down cleanly.
		snap = child.Commit()
	})

	if !out.result.IsSuccess() {
		failuresMeter.Inc()
		snap = types.State{}
	}

	// remaining can exceed MaxGas only if the dispatcher misbehaves; clamp
	// rather than wrap around.
	gasUsed := uint64(0)
	if out.remaining < info.MaxGas {
		gasUsed = info.MaxGas - out.remaining
	}

	return &SubcallResult{
		State:      snap,
		CallResult: out.result,
		GasUsed:    gasUsed,
	}, nil
}

// internalTransaction synthesizes the transaction a nested call runs as: a
// plain-format call on behalf of the original caller, zero fee, the gas
// allocation as the gas limit and the parent's remaining message quota.
func internalTransaction(info SubcallInfo, remainingMessages uint32) *types.Transaction {
	return &types.Transaction{
		Version: types.LatestTransactionVersion,
		Call: types.Call{
			Format: types.CallFormatPlain,
			Method: info.Method,
			Body:   info.Body,
		},
		AuthInfo: types.AuthInfo{
			SignerInfo: []types.SignerInfo{{
				AddressSpec: types.InternalAddressSpec(info.Caller),
				Nonce:       0,
			}},
			Fee: types.Fee{
				Amount:            types.NewBaseUnits(types.NewQuantity(0), types.NativeDenomination),
				Gas:               info.MaxGas,
				ConsensusMessages: remainingMessages,
			},
		},
	}
}
