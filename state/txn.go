package state

// Outcome decides the fate of a nested store transaction.
type Outcome uint8

const (
	// Commit persists all writes performed inside the transaction.
	Commit Outcome = iota
	// Rollback discards all writes performed inside the transaction.
	Rollback
)

// String implements fmt.Stringer.
func (oc Outcome) String() string {
	switch oc {
	case Commit:
		return "commit"
	case Rollback:
		return "rollback"
	default:
		return "unknown"
	}
}

// TxnResult pairs a transaction outcome with a payload, so the commit and
// rollback arms of a transaction body can both carry a result of the same
// shape back to the caller.
type TxnResult[T any] struct {
	Outcome Outcome
	Value   T
}

// CommitWith wraps v in a committing transaction result.
func CommitWith[T any](v T) TxnResult[T] {
	return TxnResult[T]{Outcome: Commit, Value: v}
}

// RollbackWith wraps v in a rolling-back transaction result.
func RollbackWith[T any](v T) TxnResult[T] {
	return TxnResult[T]{Outcome: Rollback, Value: v}
}

// WithTransaction runs fn inside a nested transaction on o: a snapshot is
// taken first, and if fn reports Rollback every write made inside fn is
// reverted. The payload of fn's result is returned either way.
func WithTransaction[T any](o *OverlayStore, fn func() TxnResult[T]) T {
	snap := o.Snapshot()
	res := fn()
	if res.Outcome == Rollback {
		o.RevertToSnapshot(snap)
	}
	return res.Value
}
