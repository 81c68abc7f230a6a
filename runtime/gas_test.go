package runtime

import (
	"errors"
	"testing"
)

func TestGasMeter_UseGas(t *testing.T) {
	m := NewGasMeter(100)
	if m.Remaining() != 100 || m.Used() != 0 {
		t.Fatalf("fresh meter: remaining=%d used=%d", m.Remaining(), m.Used())
	}

	if err := m.UseGas(30); err != nil {
		t.Fatalf("UseGas(30): %v", err)
	}
	if m.Remaining() != 70 || m.Used() != 30 {
		t.Fatalf("after 30: remaining=%d used=%d", m.Remaining(), m.Used())
	}

	if err := m.UseGas(70); err != nil {
		t.Fatalf("UseGas(70): %v", err)
	}
	if m.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", m.Remaining())
	}
}

func TestGasMeter_OutOfGas(t *testing.T) {
	m := NewGasMeter(50)
	if err := m.UseGas(51); !errors.Is(err, ErrOutOfGas) {
		t.Fatalf("err = %v, want ErrOutOfGas", err)
	}
	// An overdraw exhausts the meter entirely.
	if m.Remaining() != 0 {
		t.Fatalf("remaining = %d after overdraw, want 0", m.Remaining())
	}
	if m.Used() != 50 {
		t.Fatalf("used = %d, want full limit 50", m.Used())
	}
}

func TestGasMeter_ZeroLimit(t *testing.T) {
	m := NewGasMeter(0)
	if err := m.UseGas(0); err != nil {
		t.Fatalf("UseGas(0): %v", err)
	}
	if err := m.UseGas(1); !errors.Is(err, ErrOutOfGas) {
		t.Fatalf("err = %v, want ErrOutOfGas", err)
	}
}
