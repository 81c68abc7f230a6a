package types

// Event is a tagged effect emitted during execution. Events are accumulated
// per execution context and only become visible once the context commits.
type Event struct {
	Module string `codec:"module"`
	Code   uint32 `codec:"code"`
	Value  []byte `codec:"value,omitempty"`
}

// Message is an outbound consensus-layer message emitted during execution.
// Emission is bounded by the transaction's consensus message quota.
type Message struct {
	Method string `codec:"method"`
	Body   []byte `codec:"body,omitempty"`
}

// State is the post-execution snapshot of a committed execution context:
// the events and outbound messages it accumulated. The zero value is the
// empty state, substituted when a child execution rolls back.
type State struct {
	Events   []Event
	Messages []Message
}

// IsEmpty returns whether the state carries no effects.
func (s State) IsEmpty() bool {
	return len(s.Events) == 0 && len(s.Messages) == 0
}
