// Package delegatepk models a delegate's public key. A delegate is identified
// on-chain by its public key hash (Address), while the full key is needed for
// signature verification. The PubKey type keeps the signature scheme tag next
// to the raw key bytes so that further schemes can be added without touching
// the consensus kernel.
package delegatepk

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PubKey is a delegate public key: a scheme tag plus the raw key bytes.
type PubKey struct {
	// Type identifies the signature scheme (see Types).
	Type uint8
	// Raw holds the key bytes. For Secp256k1 this is the 65-byte
	// uncompressed form, 0x04 prefix included.
	Raw []byte
}

// Types enumerates the supported signature schemes.
var Types = struct {
	Secp256k1 uint8
}{
	Secp256k1: 0xc0,
}

// FromECDSA wraps an ecdsa public key into a Secp256k1 PubKey.
func FromECDSA(key *ecdsa.PublicKey) PubKey {
	return PubKey{
		Type: Types.Secp256k1,
		Raw:  crypto.FromECDSAPub(key),
	}
}

// Empty reports whether the key is uninitialized.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Type == 0
}

// Address returns the delegate's public key hash: the last 20 bytes of the
// Keccak256 digest of the raw key (without the 0x04 prefix). This is the
// identity delegates are known by in rights assignments and in the ledger.
func (pk PubKey) Address() common.Address {
	if len(pk.Raw) == 0 {
		return common.Address{}
	}
	return common.BytesToAddress(crypto.Keccak256(pk.Raw[1:])[12:])
}

// String returns the hex representation of the key, type tag included.
func (pk PubKey) String() string {
	return "0x" + common.Bytes2Hex(pk.Bytes())
}

// Bytes returns the flat form: [Type byte] + [Raw bytes...].
func (pk PubKey) Bytes() []byte {
	return append([]byte{pk.Type}, pk.Raw...)
}

// Copy returns a deep copy. Raw is a slice, so a plain assignment would
// share the backing array.
func (pk PubKey) Copy() PubKey {
	return PubKey{
		Type: pk.Type,
		Raw:  common.CopyBytes(pk.Raw),
	}
}

// FromString parses a hex string, with or without the "0x" prefix.
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes reconstructs a PubKey from its flat form.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, errors.New("empty pubkey")
	}
	return PubKey{b[0], b[1:]}, nil
}

// MarshalText implements encoding.TextMarshaler, so the key serializes as a
// hex string in JSON.
func (pk *PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
