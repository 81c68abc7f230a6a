package runtime

import "errors"

// ErrOutOfGas is returned when a charge exceeds the gas remaining in a
// meter. Once tripped, the meter reports zero remaining gas.
var ErrOutOfGas = errors.New("out of gas")

// GasMeter tracks gas consumption against a fixed limit for one transaction.
type GasMeter struct {
	limit uint64
	used  uint64
}

// NewGasMeter creates a meter with the given limit.
func NewGasMeter(limit uint64) *GasMeter {
	return &GasMeter{limit: limit}
}

// UseGas charges amount against the meter. If the charge exceeds the
// remaining budget the meter is exhausted entirely and ErrOutOfGas is
// returned.
func (m *GasMeter) UseGas(amount uint64) error {
	if amount > m.limit-m.used {
		m.used = m.limit
		return ErrOutOfGas
	}
	m.used += amount
	return nil
}

// Remaining returns the gas left in the meter.
func (m *GasMeter) Remaining() uint64 {
	return m.limit - m.used
}

// Used returns the gas consumed so far.
func (m *GasMeter) Used() uint64 {
	return m.used
}

// Limit returns the meter's gas limit.
func (m *GasMeter) Limit() uint64 {
	return m.limit
}
