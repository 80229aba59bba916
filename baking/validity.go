package baking

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

var log = logrus.WithField("module", "baking")

// CheckBlockValidity runs the full ordered validation pipeline over a
// candidate header:
//
//  1. rights (which also yields the expected signer) and timestamp window,
//  2. proof-of-work stamp,
//  3. fitness gap,
//  4. signature.
//
// Each stage short-circuits on failure and nothing is committed anywhere, so
// a rejected header leaves the context untouched. On success it returns the
// delegate that baked the block; bond collection (PayBakingBond) is a
// separate step the caller runs only after this one succeeds.
func CheckBlockValidity(ctx Context, oracle RightsOracle, header *inter.BlockHeader, predecessor inter.Timestamp) (delegatepk.PubKey, error) {
	baker, err := CheckBakingRights(ctx, oracle, header, predecessor)
	if err != nil {
		return delegatepk.PubKey{}, err
	}

	hash := header.Hash()
	if err := CheckProofOfWorkStamp(hash, ctx.Rules().Pow.Threshold); err != nil {
		return delegatepk.PubKey{}, err
	}

	if err := CheckFitnessGap(ctx, header); err != nil {
		return delegatepk.PubKey{}, err
	}

	if err := CheckBlockSignature(header, baker); err != nil {
		return delegatepk.PubKey{}, err
	}

	log.WithFields(logrus.Fields{
		"block":    hash.Hex(),
		"level":    ctx.CurrentLevel().Height,
		"priority": header.Priority,
		"baker":    baker.Address().Hex(),
	}).Debug("block header passed consensus validation")

	return baker, nil
}

// CheckProofOfWorkStamp validates the proof-of-work stamp of a block hash:
// its first 8 bytes, read as a little-endian uint64, must be strictly below
// the difficulty threshold.
func CheckProofOfWorkStamp(hash common.Hash, threshold uint64) error {
	stamp := binary.LittleEndian.Uint64(hash[:8])
	if stamp >= threshold {
		return &InvalidStampError{}
	}
	return nil
}

// CheckFitnessGap validates the header's announced fitness against the
// current context fitness. The gap must be positive (the chain must get
// heavier) and at most Rules.MaxFitnessGap() (one block plus its possible
// endorsements cannot add more weight than that). A fitness field that does
// not decode fails the same way as an out-of-range gap.
func CheckFitnessGap(ctx Context, header *inter.BlockHeader) error {
	maxGap := ctx.Rules().MaxFitnessGap()
	announced, err := inter.DecodeFitness(header.Fitness)
	if err != nil {
		return &InvalidFitnessGapError{Maximum: maxGap}
	}
	gap := announced - ctx.CurrentFitness()
	if gap <= 0 || gap > maxGap {
		return &InvalidFitnessGapError{
			Maximum:  maxGap,
			Provided: gap,
		}
	}
	return nil
}

// CheckBlockSignature verifies the header signature against the public key
// of the delegate owning the header's priority slot.
func CheckBlockSignature(header *inter.BlockHeader, baker delegatepk.PubKey) error {
	if !sigMatches(header.SealHash(), header.Sig, baker) {
		return &InvalidBlockSignatureError{
			Block:    header.Hash(),
			Expected: baker.Address(),
		}
	}
	return nil
}

// CheckEndorsementValidity validates a signed endorsement: slot rights and
// consistency first, then the signature against the slots' owner.
func CheckEndorsementValidity(ctx Context, oracle RightsOracle, e *inter.SignedEndorsement) (delegatepk.PubKey, error) {
	endorser, err := CheckEndorsementRights(ctx, oracle, e.Level, e.Slots)
	if err != nil {
		return delegatepk.PubKey{}, err
	}
	if !sigMatches(e.SealHash(), e.Sig, endorser) {
		return delegatepk.PubKey{}, &InvalidEndorsementSignatureError{
			Expected: endorser.Address(),
		}
	}
	return endorser, nil
}

// sigMatches reports whether sig is a valid recoverable secp256k1 signature
// of digest by the given key. The recovered key is compared byte for byte.
func sigMatches(digest common.Hash, sig []byte, key delegatepk.PubKey) bool {
	if key.Type != delegatepk.Types.Secp256k1 || len(sig) != inter.SigSize {
		return false
	}
	recovered, err := crypto.Ecrecover(digest.Bytes(), sig)
	if err != nil {
		return false
	}
	return bytes.Equal(recovered, key.Raw)
}
