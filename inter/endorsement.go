package inter

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Endorsement is a delegate's attestation that it has seen the block at the
// given level. One endorsement may exercise several of the delegate's signing
// slots at once; validators batch their slots into a single operation instead
// of sending one message per slot.
type Endorsement struct {
	// Level is the level of the endorsed block.
	Level Level

	// Slots lists the signing slots being exercised. All of them must
	// resolve to the same delegate, and none may exceed the protocol's
	// maximal signing slot.
	Slots []uint16
}

// SignedEndorsement wraps an Endorsement with the proof of who cast it.
type SignedEndorsement struct {
	Endorsement

	// Sig is the delegate's recoverable secp256k1 signature over
	// the endorsement's SealHash.
	Sig []byte
}

// sealedEndorsement is the signed byte layout. Level is flattened so that the
// encoding does not depend on struct nesting.
type sealedEndorsement struct {
	Height        uint64
	Cycle         uint32
	CyclePosition uint32
	Slots         []uint16
}

// SealHash returns the digest a delegate signs to endorse a block.
func (e *Endorsement) SealHash() common.Hash {
	b, err := rlp.EncodeToBytes(&sealedEndorsement{
		Height:        uint64(e.Level.Height),
		Cycle:         uint32(e.Level.Cycle),
		CyclePosition: e.Level.CyclePosition,
		Slots:         e.Slots,
	})
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}
