package inter

import (
	"errors"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// SigSize is the length of a recoverable secp256k1 signature: R || S || V.
const SigSize = 65

// fitnessSize is the serialized size of the fitness field: one big-endian int64.
const fitnessSize = 8

// ErrMalformedFitness is returned when a header's fitness field is not
// exactly 8 bytes long.
var ErrMalformedFitness = errors.New("malformed fitness: expected 8 bytes")

// BlockHeader is a candidate block header as it travels through consensus
// validation. It combines the shell part (visible to every protocol version)
// with the protocol-specific part, plus the delegate's signature over the
// unsigned serialization of both.
type BlockHeader struct {
	// Shell part.

	// Predecessor is the hash of the block this header extends.
	Predecessor common.Hash

	// Time is the timestamp the baker claims for this block. It must not be
	// earlier than the minimal time computed for the header's priority.
	Time Timestamp

	// Fitness is the announced chain weight, encoded as 8 big-endian bytes.
	// It is kept raw in the header: decoding is itself a validation step.
	Fitness []byte

	// Protocol part.

	// Priority is the baking slot this header claims. Slot 0 is the primary
	// baker for the level.
	Priority uint32

	// PowNonce is the proof-of-work nonce the baker grinds until the header
	// hash falls below the difficulty threshold.
	PowNonce [8]byte

	// Sig is the delegate's recoverable secp256k1 signature over SealHash().
	Sig []byte
}

// unsignedHeader mirrors BlockHeader without the signature. It defines the
// byte sequence the delegate actually signs.
type unsignedHeader struct {
	Predecessor common.Hash
	Time        Timestamp
	Fitness     []byte
	Priority    uint32
	PowNonce    [8]byte
}

// SealHash returns the hash of the header's unsigned serialization, i.e. the
// digest the delegate signs. Every node must derive the identical digest, so
// the encoding is canonical RLP.
func (h *BlockHeader) SealHash() common.Hash {
	b, err := rlp.EncodeToBytes(&unsignedHeader{
		Predecessor: h.Predecessor,
		Time:        h.Time,
		Fitness:     h.Fitness,
		Priority:    h.Priority,
		PowNonce:    h.PowNonce,
	})
	if err != nil {
		panic(err) // all field types are RLP-encodable
	}
	return crypto.Keccak256Hash(b)
}

// Hash returns the block hash: the hash of the full header including the
// signature. The proof-of-work check reads this hash, so the nonce and the
// signature both contribute to the stamp.
func (h *BlockHeader) Hash() common.Hash {
	b, err := rlp.EncodeToBytes(h)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}

// EncodeFitness serializes a fitness value into its 8-byte wire form.
func EncodeFitness(fitness int64) []byte {
	return bigendian.Uint64ToBytes(uint64(fitness))
}

// DecodeFitness parses a header fitness field back into an int64.
// Anything but exactly 8 bytes is malformed.
func DecodeFitness(b []byte) (int64, error) {
	if len(b) != fitnessSize {
		return 0, ErrMalformedFitness
	}
	return int64(bigendian.BytesToUint64(b)), nil
}
