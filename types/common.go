// Package types defines the value and transaction types exchanged across
// the modcore runtime boundary: fixed-width addresses and hashes, 256-bit
// quantities, token amounts, the transaction envelope, and call results.
//
// All of these types use a self-describing binary (CBOR) wire encoding:
// addresses and hashes serialize as their raw big-endian byte string and
// 256-bit quantities serialize as a fixed 32-byte big-endian byte string.
// Decoding any other shape for these fields is a type error.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	HashLength    = 32
	AddressLength = 20
)

// Hash represents a 32-byte hash of data.
type Hash [HashLength]byte

// Address represents the 20-byte address of a runtime account.
type Address [AddressLength]byte

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a hex string to Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hex string representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero returns whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// MarshalBinary encodes the hash as its raw byte string.
func (h Hash) MarshalBinary() ([]byte, error) {
	return h[:], nil
}

// UnmarshalBinary decodes a hash from its raw byte string. Anything other
// than exactly 32 bytes is a type error.
func (h *Hash) UnmarshalBinary(data []byte) error {
	if len(data) != HashLength {
		return fmt.Errorf("types: invalid hash length %d, want %d", len(data), HashLength)
	}
	copy(h[:], data)
	return nil
}

// BytesToAddress converts bytes to Address, left-padding if shorter than
// 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts a hex string to Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// SetBytes sets the address from a byte slice.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero returns whether the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// MarshalBinary encodes the address as its raw byte string.
func (a Address) MarshalBinary() ([]byte, error) {
	return a[:], nil
}

// UnmarshalBinary decodes an address from its raw byte string. Anything
// other than exactly 20 bytes is a type error.
func (a *Address) UnmarshalBinary(data []byte) error {
	if len(data) != AddressLength {
		return fmt.Errorf("types: invalid address length %d, want %d", len(data), AddressLength)
	}
	copy(a[:], data)
	return nil
}

// fromHex decodes a hex string, stripping optional "0x" prefix.
func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
