package baking

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// TestCheckEndorsementRights_consistent verifies that slots owned by the same
// delegate resolve to that delegate's key.
func TestCheckEndorsementRights_consistent(t *testing.T) {
	require := require.New(t)
	_, d := genDelegate(t)

	oracle := &mapOracle{endorsement: map[uint16]delegatepk.PubKey{2: d, 5: d, 7: d}}
	ctx := NewFakeContext(bakery.FakeNetRules(), testLevel, 0, FakeGenesisTime)

	owner, err := CheckEndorsementRights(ctx, oracle, testLevel, []uint16{2, 5, 7})
	require.NoError(err)
	require.Equal(d, owner)
}

// TestCheckEndorsementRights_inconsistent verifies that slots owned by
// different delegates are rejected, naming every distinct delegate in
// encounter order.
func TestCheckEndorsementRights_inconsistent(t *testing.T) {
	require := require.New(t)
	_, d1 := genDelegate(t)
	_, d2 := genDelegate(t)

	oracle := &mapOracle{endorsement: map[uint16]delegatepk.PubKey{2: d1, 3: d2, 4: d1}}
	ctx := NewFakeContext(bakery.FakeNetRules(), testLevel, 0, FakeGenesisTime)

	_, err := CheckEndorsementRights(ctx, oracle, testLevel, []uint16{2, 3, 4})
	require.Error(err)
	inconsistent, ok := err.(*InconsistentEndorsementError)
	require.True(ok, "expected InconsistentEndorsementError, got %T", err)
	require.Equal([]common.Address{d1.Address(), d2.Address()}, inconsistent.Delegates)
}

// TestCheckEndorsementRights_keyEquality verifies that owners are compared
// by full key equality: a single flipped bit in the raw key bytes makes the
// endorsement inconsistent.
func TestCheckEndorsementRights_keyEquality(t *testing.T) {
	require := require.New(t)
	_, d1 := genDelegate(t)
	d1Mutated := d1.Copy()
	d1Mutated.Raw[len(d1Mutated.Raw)-1] ^= 0x01

	oracle := &mapOracle{endorsement: map[uint16]delegatepk.PubKey{0: d1, 1: d1Mutated}}
	ctx := NewFakeContext(bakery.FakeNetRules(), testLevel, 0, FakeGenesisTime)

	_, err := CheckEndorsementRights(ctx, oracle, testLevel, []uint16{0, 1})
	require.Error(err)
	require.IsType(&InconsistentEndorsementError{}, err)
}

// TestCheckEndorsementRights_empty verifies that an endorsement without
// slots is rejected.
func TestCheckEndorsementRights_empty(t *testing.T) {
	require := require.New(t)
	ctx := NewFakeContext(bakery.FakeNetRules(), testLevel, 0, FakeGenesisTime)

	_, err := CheckEndorsementRights(ctx, &mapOracle{}, testLevel, nil)
	require.Error(err)
	require.IsType(&EmptyEndorsementError{}, err)
}

// TestCheckEndorsementRights_slotBound verifies the signing slot bound:
// max_signing_slot itself is valid, one past it is not.
func TestCheckEndorsementRights_slotBound(t *testing.T) {
	require := require.New(t)
	_, d := genDelegate(t)

	rules := bakery.FakeNetRules()
	maxSlot := rules.Slots.MaxSigningSlot
	oracle := &mapOracle{endorsement: map[uint16]delegatepk.PubKey{maxSlot: d}}
	ctx := NewFakeContext(rules, testLevel, 0, FakeGenesisTime)

	_, err := CheckEndorsementRights(ctx, oracle, testLevel, []uint16{maxSlot})
	require.NoError(err)

	_, err = CheckEndorsementRights(ctx, oracle, testLevel, []uint16{maxSlot + 1})
	require.Error(err)
	invalidSlot, ok := err.(*InvalidEndorsementSlotError)
	require.True(ok, "expected InvalidEndorsementSlotError, got %T", err)
	require.Equal(maxSlot, invalidSlot.Maximum)
	require.Equal(maxSlot+1, invalidSlot.Provided)
}

// TestCheckBakingRights verifies that the slot owner is returned and that the
// timestamp window is enforced as part of the rights check.
func TestCheckBakingRights(t *testing.T) {
	require := require.New(t)
	_, d := genDelegate(t)

	rules := bakery.FakeNetRules()
	oracle := &mapOracle{baking: map[uint32]delegatepk.PubKey{3: d}}
	ctx := NewFakeContext(rules, testLevel, 0, FakeGenesisTime)

	header := &inter.BlockHeader{Priority: 3}
	minimal, err := MinimalTime(rules, header.Priority, FakeGenesisTime)
	require.NoError(err)

	header.Time = minimal
	owner, err := CheckBakingRights(ctx, oracle, header, FakeGenesisTime)
	require.NoError(err)
	require.Equal(d, owner)

	header.Time = minimal - 1
	_, err = CheckBakingRights(ctx, oracle, header, FakeGenesisTime)
	require.Error(err)
	require.IsType(&TimestampTooEarlyError{}, err)
}
