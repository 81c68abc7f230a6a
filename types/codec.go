package types

import (
	"github.com/ugorji/go/codec"
)

// cborHandle is the shared handle for the runtime's wire encoding. Canonical
// mode keeps map keys sorted so encodings are deterministic across nodes.
var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

// MarshalCBOR encodes v into the runtime's self-describing binary format.
// Types implementing encoding.BinaryMarshaler (Address, Hash, Quantity)
// encode as CBOR byte strings.
func MarshalCBOR(v interface{}) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, cborHandle).Encode(v); err != nil {
		return nil, err
	}
	return out, nil
}

// MustMarshalCBOR encodes v, panicking on error. Only for values whose
// encoding cannot fail (plain structs of encodable fields).
func MustMarshalCBOR(v interface{}) []byte {
	out, err := MarshalCBOR(v)
	if err != nil {
		panic(err)
	}
	return out
}

// UnmarshalCBOR decodes data into v.
func UnmarshalCBOR(data []byte, v interface{}) error {
	return codec.NewDecoderBytes(data, cborHandle).Decode(v)
}
