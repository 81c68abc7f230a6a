package subcall

// stackEntry tracks one active nested call. The validator it carries is
// consulted for every deeper call issued while the entry is on the stack.
type stackEntry struct {
	validator Validator
}

// Stack tracks the chain of currently active nested calls for a single
// execution thread. Each transaction context owns exactly one Stack; it is
// never shared across concurrently executing transactions, so no locking
// is required. The stack starts empty and must be empty again once the
// transaction's execution finishes.
type Stack struct {
	entries []stackEntry
}

// NewStack returns an empty call stack.
func NewStack() *Stack {
	return &Stack{}
}

// Depth returns the number of nested calls currently active.
func (s *Stack) Depth() uint16 {
	return uint16(len(s.entries))
}

// push appends an entry for a call whose setup checks have all passed.
func (s *Stack) push(e stackEntry) {
	s.entries = append(s.entries, e)
}

// pop removes the most recently pushed entry. Safe to call on an empty
// stack so the release path never panics during unwinding.
func (s *Stack) pop() {
	if n := len(s.entries); n > 0 {
		s.entries[n-1] = stackEntry{}
		s.entries = s.entries[:n-1]
	}
}

// runValidators runs every active validator against info, outermost first.
// The first rejection aborts the chain.
func (s *Stack) runValidators(info SubcallInfo) error {
	for _, e := range s.entries {
		if err := e.validator.Validate(info); err != nil {
			return err
		}
	}
	return nil
}
