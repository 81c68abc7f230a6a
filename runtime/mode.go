package runtime

// Mode selects how an execution context treats the transactions dispatched
// in it.
type Mode uint8

const (
	// ModeExecute runs transactions for real, mutating state.
	ModeExecute Mode = iota
	// ModeCheck only verifies that a transaction is well formed and
	// authorized, without running its handler.
	ModeCheck
	// ModeSimulate runs transactions fully but the caller is expected to
	// discard the resulting state.
	ModeSimulate
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeExecute:
		return "execute"
	case ModeCheck:
		return "check"
	case ModeSimulate:
		return "simulate"
	default:
		return "unknown"
	}
}
