package runtime

import (
	"encoding/binary"
	"fmt"

	"github.com/modcore/modcore/state"
	"github.com/modcore/modcore/types"
)

var noncePrefix = []byte("core/nonce/")

func nonceKey(addr types.Address) []byte {
	return append(append([]byte{}, noncePrefix...), addr[:]...)
}

// AccountNonce reads the stored nonce for addr. Unknown accounts start at
// zero.
func AccountNonce(s state.Store, addr types.Address) uint64 {
	raw := s.Get(nonceKey(addr))
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

// setAccountNonce stores the nonce for addr.
func setAccountNonce(s state.Store, addr types.Address, nonce uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)
	s.Set(nonceKey(addr), buf[:])
}

// checkAndBumpNonce enforces replay protection: the transaction's nonce must
// equal the account's stored nonce, which is then advanced by one.
func checkAndBumpNonce(c *Context, caller types.CallerAddress, nonce uint64) error {
	expected := AccountNonce(c.store, caller.Address)
	if nonce != expected {
		return fmt.Errorf("invalid nonce for %s: got %d, expected %d", caller.Address.Hex(), nonce, expected)
	}
	setAccountNonce(c.store, caller.Address, expected+1)
	return nil
}
