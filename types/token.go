package types

import "fmt"

// Denomination names a token denomination. The empty string denotes the
// runtime's native denomination.
type Denomination string

// NativeDenomination is the denomination of the runtime's own token.
const NativeDenomination Denomination = ""

// IsNative returns whether d is the native denomination.
func (d Denomination) IsNative() bool { return d == NativeDenomination }

// String implements fmt.Stringer.
func (d Denomination) String() string {
	if d.IsNative() {
		return "<native>"
	}
	return string(d)
}

// BaseUnits is a token amount in base (indivisible) units of a specific
// denomination.
type BaseUnits struct {
	Amount       Quantity     `codec:"amount"`
	Denomination Denomination `codec:"denomination"`
}

// NewBaseUnits creates a token amount from a quantity and denomination.
func NewBaseUnits(amount Quantity, denomination Denomination) BaseUnits {
	return BaseUnits{Amount: amount, Denomination: denomination}
}

// IsZero returns whether the amount equals zero.
func (b BaseUnits) IsZero() bool { return b.Amount.IsZero() }

// String implements fmt.Stringer.
func (b BaseUnits) String() string {
	return fmt.Sprintf("%s %s", b.Amount.String(), b.Denomination.String())
}
