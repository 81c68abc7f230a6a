package subcall

import "fmt"

// CallDepthExceededError is returned when a subcall would exceed the
// recursion ceiling it declared for itself. It carries the depth the call
// attempted to occupy and the declared limit.
type CallDepthExceededError struct {
	Attempted uint16
	Limit     uint16
}

// Error implements the error interface.
func (e *CallDepthExceededError) Error() string {
	return fmt.Sprintf("subcall: call depth exceeded (attempted: %d, limit: %d)", e.Attempted, e.Limit)
}
