// Package baking implements the consensus rule-enforcement kernel of the
// Bakery chain: timestamp windows, baking and endorsement rights, block
// validity checking, and the bond/reward accounting attached to those roles.
//
// Every check in this package is deterministic over immutable chain data.
// Two nodes disagreeing on any result here is a consensus fork, so the
// package has no configuration beyond bakery.Rules and no hidden state.
package baking

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bakerynet/go-bakery/inter"
)

// Error categories. Validation errors are permanent: they are a function of
// immutable chain data, so retrying without new input cannot succeed.
// Precondition errors signal a caller contract violation rather than a
// chain-data defect.
const (
	CategoryPermanent    = "permanent"
	CategoryPrecondition = "precondition"
)

// Error is a consensus failure with a stable wire identifier and a structured
// payload. Callers (chain validator, mempool, RPC) must surface the id and
// payload verbatim, so that failures reproduce identically across nodes.
type Error interface {
	error

	// ErrorID returns the stable identifier of the error kind.
	ErrorID() string
}

// TimestampTooEarlyError rejects a header whose timestamp precedes the
// minimal time computed for its priority.
type TimestampTooEarlyError struct {
	Minimum  inter.Timestamp `json:"minimum"`
	Provided inter.Timestamp `json:"provided"`
}

func (e *TimestampTooEarlyError) ErrorID() string { return "baking.timestamp_too_early" }

func (e *TimestampTooEarlyError) Error() string {
	return fmt.Sprintf("block timestamp too early: minimum %s, provided %s",
		e.Minimum.Time(), e.Provided.Time())
}

// InvalidFitnessGapError rejects a header whose announced fitness is not
// strictly above the current fitness, exceeds the maximal gap, or does not
// decode at all (Provided is zero in the decode-failure case).
type InvalidFitnessGapError struct {
	Maximum  int64 `json:"maximum"`
	Provided int64 `json:"provided"`
}

func (e *InvalidFitnessGapError) ErrorID() string { return "baking.invalid_fitness_gap" }

func (e *InvalidFitnessGapError) Error() string {
	return fmt.Sprintf("invalid fitness gap: provided %d, allowed range (0, %d]", e.Provided, e.Maximum)
}

// InvalidEndorsementSlotError rejects an endorsement referencing a slot
// above the protocol's maximal signing slot.
type InvalidEndorsementSlotError struct {
	Maximum  uint16 `json:"maximum"`
	Provided uint16 `json:"provided"`
}

func (e *InvalidEndorsementSlotError) ErrorID() string { return "baking.invalid_endorsement_slot" }

func (e *InvalidEndorsementSlotError) Error() string {
	return fmt.Sprintf("invalid endorsement slot %d: maximum is %d", e.Provided, e.Maximum)
}

// InconsistentEndorsementError rejects an endorsement whose slots resolve to
// more than one delegate. Delegates lists every distinct public key hash
// found, in encounter order.
type InconsistentEndorsementError struct {
	Delegates []common.Address `json:"delegates"`
}

func (e *InconsistentEndorsementError) ErrorID() string { return "baking.inconsistent_endorsement" }

func (e *InconsistentEndorsementError) Error() string {
	return fmt.Sprintf("inconsistent endorsement: slots owned by %d distinct delegates %v",
		len(e.Delegates), e.Delegates)
}

// EmptyEndorsementError rejects an endorsement exercising no slots.
type EmptyEndorsementError struct{}

func (e *EmptyEndorsementError) ErrorID() string { return "baking.empty_endorsement" }

func (e *EmptyEndorsementError) Error() string { return "endorsement without slots" }

// InvalidStampError rejects a header whose hash does not satisfy the
// proof-of-work threshold.
type InvalidStampError struct{}

func (e *InvalidStampError) ErrorID() string { return "baking.invalid_stamp" }

func (e *InvalidStampError) Error() string { return "block hash does not satisfy the proof-of-work threshold" }

// InvalidBlockSignatureError rejects a header whose signature does not verify
// against the public key of the delegate owning the claimed priority.
type InvalidBlockSignatureError struct {
	Block    common.Hash    `json:"block"`
	Expected common.Address `json:"expected"`
}

func (e *InvalidBlockSignatureError) ErrorID() string { return "baking.invalid_block_signature" }

func (e *InvalidBlockSignatureError) Error() string {
	return fmt.Sprintf("invalid signature on block %s: expected signer %s", e.Block.Hex(), e.Expected.Hex())
}

// InvalidEndorsementSignatureError rejects an endorsement whose signature
// does not verify against the slot owner's public key.
type InvalidEndorsementSignatureError struct {
	Expected common.Address `json:"expected"`
}

func (e *InvalidEndorsementSignatureError) ErrorID() string {
	return "baking.invalid_endorsement_signature"
}

func (e *InvalidEndorsementSignatureError) Error() string {
	return fmt.Sprintf("invalid endorsement signature: expected signer %s", e.Expected.Hex())
}

// CannotPayBakingBondError rejects a block whose baker cannot fund the
// baking bond.
type CannotPayBakingBondError struct{}

func (e *CannotPayBakingBondError) ErrorID() string { return "baking.cannot_pay_baking_bond" }

func (e *CannotPayBakingBondError) Error() string {
	return "delegate cannot pay the baking bond"
}

// CannotPayEndorsementBondError rejects an endorsement whose delegate cannot
// fund the endorsement bond.
type CannotPayEndorsementBondError struct{}

func (e *CannotPayEndorsementBondError) ErrorID() string { return "baking.cannot_pay_endorsement_bond" }

func (e *CannotPayEndorsementBondError) Error() string {
	return "delegate cannot pay the endorsement bond"
}

// IncorrectPriorityError signals a negative priority passed to a reward
// computation. This is a caller bug, not a chain-data defect.
type IncorrectPriorityError struct {
	Provided int64 `json:"provided"`
}

func (e *IncorrectPriorityError) ErrorID() string { return "baking.incorrect_priority" }

func (e *IncorrectPriorityError) Error() string {
	return fmt.Sprintf("negative priority %d passed to reward computation", e.Provided)
}

// ErrorSpec describes one error kind for reporting layers: stable id, human
// readable title and description, category, and a payload factory used when
// decoding. The set of kinds is configuration data, not runtime state.
type ErrorSpec struct {
	ID          string
	Title       string
	Description string
	Category    string
	New         func() Error
}

var errorSpecs = []ErrorSpec{
	{
		ID:          "baking.timestamp_too_early",
		Title:       "Block forged too early",
		Description: "The block timestamp is before the minimal time for its priority slot.",
		Category:    CategoryPermanent,
		New:         func() Error { return &TimestampTooEarlyError{} },
	},
	{
		ID:          "baking.invalid_fitness_gap",
		Title:       "Invalid fitness gap",
		Description: "The gap between the announced fitness and the current fitness is out of range.",
		Category:    CategoryPermanent,
		New:         func() Error { return &InvalidFitnessGapError{} },
	},
	{
		ID:          "baking.invalid_endorsement_slot",
		Title:       "Invalid endorsement slot",
		Description: "The endorsement references a slot above the maximal signing slot.",
		Category:    CategoryPermanent,
		New:         func() Error { return &InvalidEndorsementSlotError{} },
	},
	{
		ID:          "baking.inconsistent_endorsement",
		Title:       "Inconsistent endorsement",
		Description: "The endorsement's slots are owned by more than one delegate.",
		Category:    CategoryPermanent,
		New:         func() Error { return &InconsistentEndorsementError{} },
	},
	{
		ID:          "baking.empty_endorsement",
		Title:       "Empty endorsement",
		Description: "The endorsement exercises no slot.",
		Category:    CategoryPermanent,
		New:         func() Error { return &EmptyEndorsementError{} },
	},
	{
		ID:          "baking.invalid_stamp",
		Title:       "Invalid proof-of-work stamp",
		Description: "The block hash does not satisfy the proof-of-work threshold.",
		Category:    CategoryPermanent,
		New:         func() Error { return &InvalidStampError{} },
	},
	{
		ID:          "baking.invalid_block_signature",
		Title:       "Invalid block signature",
		Description: "The block signature does not verify against the expected delegate key.",
		Category:    CategoryPermanent,
		New:         func() Error { return &InvalidBlockSignatureError{} },
	},
	{
		ID:          "baking.invalid_endorsement_signature",
		Title:       "Invalid endorsement signature",
		Description: "The endorsement signature does not verify against the slot owner's key.",
		Category:    CategoryPermanent,
		New:         func() Error { return &InvalidEndorsementSignatureError{} },
	},
	{
		ID:          "baking.cannot_pay_baking_bond",
		Title:       "Cannot pay baking bond",
		Description: "The delegate's balance cannot cover the baking bond.",
		Category:    CategoryPermanent,
		New:         func() Error { return &CannotPayBakingBondError{} },
	},
	{
		ID:          "baking.cannot_pay_endorsement_bond",
		Title:       "Cannot pay endorsement bond",
		Description: "The delegate's balance cannot cover the endorsement bond.",
		Category:    CategoryPermanent,
		New:         func() Error { return &CannotPayEndorsementBondError{} },
	},
	{
		ID:          "baking.incorrect_priority",
		Title:       "Incorrect priority",
		Description: "A negative priority was passed to a reward computation.",
		Category:    CategoryPrecondition,
		New:         func() Error { return &IncorrectPriorityError{} },
	},
}

var specsByID = func() map[string]ErrorSpec {
	m := make(map[string]ErrorSpec, len(errorSpecs))
	for _, spec := range errorSpecs {
		m[spec.ID] = spec
	}
	return m
}()

// ErrorSpecs returns the full static registry, in declaration order.
func ErrorSpecs() []ErrorSpec {
	return append([]ErrorSpec(nil), errorSpecs...)
}

// SpecByID looks up one registry entry.
func SpecByID(id string) (ErrorSpec, bool) {
	spec, ok := specsByID[id]
	return spec, ok
}

// errorEnvelope is the wire form of a consensus error: the kind identifier
// plus the kind-specific payload.
type errorEnvelope struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeError serializes a consensus error into its wire form.
func EncodeError(e Error) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&errorEnvelope{
		ID:      e.ErrorID(),
		Payload: payload,
	})
}

// DecodeError parses a wire-form consensus error back into its typed value,
// consulting the registry for the payload schema.
func DecodeError(b []byte) (Error, error) {
	var env errorEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	spec, ok := SpecByID(env.ID)
	if !ok {
		return nil, fmt.Errorf("unknown consensus error id %q", env.ID)
	}
	e := spec.New()
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, e); err != nil {
			return nil, err
		}
	}
	return e, nil
}
