package subcall

import (
	"errors"
	"testing"
)

type listValidator struct {
	seen   []string
	reject string
}

func (v *listValidator) Validate(info SubcallInfo) error {
	v.seen = append(v.seen, info.Method)
	if v.reject != "" && info.Method == v.reject {
		return errors.New("rejected: " + info.Method)
	}
	return nil
}

func TestStack_PushPop(t *testing.T) {
	s := NewStack()
	if s.Depth() != 0 {
		t.Fatalf("new stack depth = %d, want 0", s.Depth())
	}

	s.push(stackEntry{validator: AllowAllValidator{}})
	s.push(stackEntry{validator: AllowAllValidator{}})
	if s.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", s.Depth())
	}

	s.pop()
	if s.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", s.Depth())
	}
	s.pop()
	s.pop() // popping empty must not panic
	if s.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", s.Depth())
	}
}

func TestStack_RunValidatorsOrder(t *testing.T) {
	var order []string
	mk := func(tag string) Validator {
		return validatorFunc(func(SubcallInfo) error {
			order = append(order, tag)
			return nil
		})
	}

	s := NewStack()
	s.push(stackEntry{validator: mk("outer")})
	s.push(stackEntry{validator: mk("inner")})

	if err := s.runValidators(SubcallInfo{Method: "m"}); err != nil {
		t.Fatalf("runValidators: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("validator order = %v, want [outer inner]", order)
	}
}

func TestStack_RunValidatorsShortCircuit(t *testing.T) {
	s := NewStack()
	outer := &listValidator{reject: "m"}
	inner := &listValidator{}
	s.push(stackEntry{validator: outer})
	s.push(stackEntry{validator: inner})

	if err := s.runValidators(SubcallInfo{Method: "m"}); err == nil {
		t.Fatal("expected rejection")
	}
	if len(inner.seen) != 0 {
		t.Fatal("inner validator ran after outer rejected")
	}
}

// validatorFunc adapts a function to the Validator interface.
type validatorFunc func(SubcallInfo) error

func (f validatorFunc) Validate(info SubcallInfo) error { return f(info) }
