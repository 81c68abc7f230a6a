package types

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// LatestTransactionVersion is the transaction envelope version this runtime
// produces and accepts.
const LatestTransactionVersion = 1

// Transaction validation errors.
var (
	ErrUnsupportedVersion = errors.New("transaction: unsupported version")
	ErrNoSigner           = errors.New("transaction: no signer info")
	ErrMalformedSigner    = errors.New("transaction: malformed address spec")
	ErrUnknownCallFormat  = errors.New("transaction: unknown call format")
)

// CallFormat describes how a call's body is encoded.
type CallFormat uint8

const (
	// CallFormatPlain marks a body that needs no further envelope decoding.
	CallFormatPlain CallFormat = iota
)

// String implements fmt.Stringer.
func (f CallFormat) String() string {
	switch f {
	case CallFormatPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// Call is a method invocation: a method name plus an opaque encoded body.
type Call struct {
	Format CallFormat `codec:"format"`
	Method string     `codec:"method"`
	Body   []byte     `codec:"body"`
}

// AddressSpace qualifies which address namespace a caller identity lives in.
type AddressSpace uint8

const (
	// SpaceNative addresses runtime accounts directly.
	SpaceNative AddressSpace = iota
	// SpaceEVM addresses accounts derived from EVM-style key material.
	SpaceEVM
)

// String implements fmt.Stringer.
func (s AddressSpace) String() string {
	switch s {
	case SpaceNative:
		return "native"
	case SpaceEVM:
		return "evm"
	default:
		return "unknown"
	}
}

// CallerAddress is an address-space-qualified caller identity. Subcalls are
// authorized by the runtime on the caller's behalf, so no key material or
// signature accompanies it.
type CallerAddress struct {
	Space   AddressSpace `codec:"space"`
	Address Address      `codec:"address"`
}

// NativeCaller wraps a runtime address as a native-space caller identity.
func NativeCaller(addr Address) CallerAddress {
	return CallerAddress{Space: SpaceNative, Address: addr}
}

// AddressSpec identifies the authority behind a signer entry. Exactly one
// variant is set: Signature carries the public key of an externally signed
// transaction, Internal marks a caller already authorized by the runtime.
type AddressSpec struct {
	Signature []byte         `codec:"signature,omitempty"`
	Internal  *CallerAddress `codec:"internal,omitempty"`
}

// InternalAddressSpec builds the address spec for an internally-authorized
// caller.
func InternalAddressSpec(caller CallerAddress) AddressSpec {
	return AddressSpec{Internal: &caller}
}

// IsInternal returns whether this spec marks an internally-authorized caller.
func (as AddressSpec) IsInternal() bool { return as.Internal != nil }

// Caller resolves the spec into a caller identity. For signature specs the
// address is derived from the public key.
func (as AddressSpec) Caller() (CallerAddress, error) {
	switch {
	case as.Internal != nil:
		if len(as.Signature) > 0 {
			return CallerAddress{}, ErrMalformedSigner
		}
		return *as.Internal, nil
	case len(as.Signature) > 0:
		return NativeCaller(BytesToAddress(crypto.Keccak256(as.Signature)[12:])), nil
	default:
		return CallerAddress{}, ErrMalformedSigner
	}
}

// SignerInfo is one signer entry of a transaction's auth info.
type SignerInfo struct {
	AddressSpec AddressSpec `codec:"address_spec"`
	Nonce       uint64      `codec:"nonce"`
}

// Fee carries the transaction's resource ceilings: a token amount charged
// up front, a compute (gas) ceiling and an outbound consensus message
// ceiling for the call and everything it transitively invokes.
type Fee struct {
	Amount            BaseUnits `codec:"amount"`
	Gas               uint64    `codec:"gas"`
	ConsensusMessages uint32    `codec:"consensus_messages"`
}

// AuthInfo is the authorization portion of a transaction.
type AuthInfo struct {
	SignerInfo []SignerInfo `codec:"signer_info"`
	Fee        Fee          `codec:"fee"`
}

// Transaction is the runtime's transaction envelope.
type Transaction struct {
	Version  uint16   `codec:"version"`
	Call     Call     `codec:"call"`
	AuthInfo AuthInfo `codec:"auth_info"`
}

// Validate performs stateless well-formedness checks.
func (t *Transaction) Validate() error {
	if t.Version != LatestTransactionVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, t.Version)
	}
	if t.Call.Format != CallFormatPlain {
		return fmt.Errorf("%w: %d", ErrUnknownCallFormat, t.Call.Format)
	}
	if len(t.AuthInfo.SignerInfo) == 0 {
		return ErrNoSigner
	}
	for _, si := range t.AuthInfo.SignerInfo {
		if _, err := si.AddressSpec.Caller(); err != nil {
			return err
		}
	}
	return nil
}

// Hash returns the keccak256 hash of the encoded transaction.
func (t *Transaction) Hash() Hash {
	return BytesToHash(crypto.Keccak256(MustMarshalCBOR(t)))
}
