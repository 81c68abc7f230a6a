package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

// QuantityLength is the encoded size of a Quantity in bytes.
const QuantityLength = 32

// Quantity is an unsigned 256-bit integer used for token amounts and other
// arbitrary-precision counters. The zero value is ready to use and equals 0.
type Quantity struct {
	inner uint256.Int
}

// NewQuantity returns a Quantity holding the given uint64 value.
func NewQuantity(v uint64) Quantity {
	var q Quantity
	q.inner.SetUint64(v)
	return q
}

// QuantityFromBytes interprets b as a big-endian unsigned integer. Inputs
// longer than 32 bytes are a type error.
func QuantityFromBytes(b []byte) (Quantity, error) {
	var q Quantity
	if err := q.UnmarshalBinary(b); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// Uint64 returns the low 64 bits of the quantity and whether it fits.
func (q Quantity) Uint64() (uint64, bool) {
	return q.inner.Uint64(), q.inner.IsUint64()
}

// IsZero returns whether the quantity equals zero.
func (q Quantity) IsZero() bool {
	return q.inner.IsZero()
}

// Cmp compares q and other, returning -1, 0 or +1.
func (q Quantity) Cmp(other Quantity) int {
	return q.inner.Cmp(&other.inner)
}

// Add returns q + other, capping at the maximum 256-bit value on overflow.
func (q Quantity) Add(other Quantity) Quantity {
	var out Quantity
	if _, overflow := out.inner.AddOverflow(&q.inner, &other.inner); overflow {
		out.inner.SetAllOne()
	}
	return out
}

// Sub returns q - other, saturating at zero.
func (q Quantity) Sub(other Quantity) Quantity {
	var out Quantity
	if _, underflow := out.inner.SubOverflow(&q.inner, &other.inner); underflow {
		out.inner.Clear()
	}
	return out
}

// String implements fmt.Stringer, rendering the quantity in decimal.
func (q Quantity) String() string {
	return q.inner.Dec()
}

// MarshalBinary encodes the quantity as a fixed 32-byte big-endian string.
func (q Quantity) MarshalBinary() ([]byte, error) {
	b := q.inner.Bytes32()
	return b[:], nil
}

// UnmarshalBinary decodes a big-endian byte string of at most 32 bytes.
func (q *Quantity) UnmarshalBinary(data []byte) error {
	if len(data) > QuantityLength {
		return fmt.Errorf("types: invalid quantity length %d, want at most %d", len(data), QuantityLength)
	}
	q.inner.SetBytes(data)
	return nil
}
