// Package bakery defines the network rules for the Bakery delegated
// proof-of-stake chain.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Slot rules: per-priority minimal block delays and the signing slot bound
//   - Cycle rules: the fixed cycle length used for protocol bookkeeping
//   - Economy rules: bond and reward amounts tied to baking and endorsing
//   - Proof-of-work rules: the stamp difficulty threshold
//
// The Rules type is the central configuration structure holding every
// consensus-critical parameter for a given network deployment. Any divergence
// in these values between two nodes is a consensus fork, so they are only
// ever set by the per-network constructors below.
package bakery

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/bakerynet/go-bakery/inter"
)

// Network identification constants
const (
	// MainNetworkID is the chain ID for the Bakery mainnet.
	MainNetworkID uint64 = 0xba4e1

	// TestNetworkID is the chain ID for the Bakery testnet.
	TestNetworkID uint64 = 0xba4e2

	// FakeNetworkID is the chain ID for local/fake networks used in testing.
	FakeNetworkID uint64 = 0xba4e3
)

// Token denomination constants, in the chain's smallest unit.
const (
	// Grain is the smallest token unit.
	Grain = 1

	// Loaf is the human-facing token unit (1 Loaf = 10^6 Grain).
	Loaf = 1000 * 1000 * Grain
)

// DefaultSlotDuration is the delay applied per priority slot when a network
// does not configure an explicit duration list.
const DefaultSlotDuration = inter.Timestamp(1 * time.Minute)

// Rules describes the complete configuration for a Bakery network.
// This is the main type used throughout the codebase to access network
// parameters.
//
// Note: Rules contains *big.Int fields; use Copy() rather than assignment
// when a mutable instance is needed.
type Rules struct {
	Name      string // Network name identifier (e.g. "main", "test", "fake")
	NetworkID uint64 // Chain ID for signing and network identification

	// Slot timing and endorsement slot bound
	Slots SlotsRules

	// Cycle bookkeeping
	Cycles CyclesRules

	// Bonds and rewards
	Economy EconomyRules

	// Proof-of-work stamp difficulty
	Pow PowRules
}

// SlotsRules defines the timing and bounds of baking and signing slots.
type SlotsRules struct {
	// Durations is the ordered list of minimal delays between a predecessor
	// block and a block baked at each successive priority. The last entry
	// applies to every priority beyond the list's length. An empty list
	// falls back to DefaultSlotDuration.
	Durations []inter.Timestamp

	// MaxSigningSlot is the highest valid endorsement slot index.
	// Endorsement operations referencing a slot above it are invalid.
	MaxSigningSlot uint16
}

// CyclesRules defines the fixed cycle structure of the chain.
type CyclesRules struct {
	// Length is the number of consecutive levels forming one cycle.
	Length uint32
}

// EconomyRules contains the bond and reward parameters for the network.
// Bonds are collateral debited when a delegate exercises a paid right;
// rewards are credited once the produced block or endorsement is settled.
type EconomyRules struct {
	// BakingBondCost is the collateral debited from a delegate baking at a
	// priority below FirstFreeBakingSlot.
	BakingBondCost *big.Int

	// EndorsementBondCost is the collateral debited for every endorsement.
	EndorsementBondCost *big.Int

	// BakingReward is the base reward for baking a block, excluding the
	// bond refund.
	BakingReward *big.Int

	// EndorsementReward is the endorsement reward for a block baked at
	// priority 0. It is divided by (priority + 1) for lower-priority blocks.
	EndorsementReward *big.Int

	// FirstFreeBakingSlot is the first priority at which no baking bond is
	// charged. Slots at or beyond it are "free".
	FirstFreeBakingSlot uint32
}

// PowRules defines the proof-of-work stamp requirement.
type PowRules struct {
	// Threshold is the exclusive upper bound for the first 8 bytes of a
	// block hash, read as a little-endian uint64. Lower threshold means
	// harder stamps.
	Threshold uint64
}

// MaxFitnessGap is the largest allowed distance between a header's announced
// fitness and the current context fitness: one step per possible endorsement
// slot, plus the baked block itself, plus one.
func (r Rules) MaxFitnessGap() int64 {
	return int64(r.Slots.MaxSigningSlot) + 2
}

// MainNetRules returns the configuration rules for the Bakery mainnet.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Slots:     DefaultSlotsRules(),
		Cycles:    DefaultCyclesRules(),
		Economy:   DefaultEconomyRules(),
		Pow: PowRules{
			Threshold: 1 << 46, // ~17 bits of work per stamp
		},
	}
}

// TestNetRules returns the configuration rules for the Bakery testnet.
// Testnet keeps mainnet economics but requires much cheaper stamps.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Slots:     DefaultSlotsRules(),
		Cycles:    DefaultCyclesRules(),
		Economy:   DefaultEconomyRules(),
		Pow: PowRules{
			Threshold: 1 << 56,
		},
	}
}

// FakeNetRules returns the configuration rules for fake/local networks.
// Fake networks use accelerated parameters for faster testing:
//   - Short slot durations (seconds instead of minutes)
//   - Short cycles (16 levels instead of 4096)
//   - A proof-of-work threshold that virtually every hash satisfies
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Slots: SlotsRules{
			Durations: []inter.Timestamp{
				inter.Timestamp(3 * time.Second),
				inter.Timestamp(2 * time.Second),
			},
			MaxSigningSlot: 31,
		},
		Cycles: CyclesRules{
			Length: 16,
		},
		Economy: DefaultEconomyRules(),
		Pow: PowRules{
			Threshold: 1 << 63, // half of all hashes pass
		},
	}
}

// DefaultSlotsRules returns the mainnet slot configuration: one minute for
// the primary slot, 40 extra seconds per missed priority after it.
func DefaultSlotsRules() SlotsRules {
	return SlotsRules{
		Durations: []inter.Timestamp{
			inter.Timestamp(60 * time.Second),
			inter.Timestamp(40 * time.Second),
		},
		MaxSigningSlot: 15,
	}
}

// DefaultCyclesRules returns the mainnet cycle configuration.
func DefaultCyclesRules() CyclesRules {
	return CyclesRules{
		Length: 4096,
	}
}

// DefaultEconomyRules returns the mainnet bond and reward amounts.
func DefaultEconomyRules() EconomyRules {
	return EconomyRules{
		BakingBondCost:      big.NewInt(512 * Loaf),
		EndorsementBondCost: big.NewInt(64 * Loaf),
		BakingReward:        big.NewInt(16 * Loaf),
		EndorsementReward:   big.NewInt(2 * Loaf),
		FirstFreeBakingSlot: 8,
	}
}

// Copy creates a deep copy of Rules. The economy amounts are *big.Int, which
// a shallow copy would share between instances.
func (r Rules) Copy() Rules {
	cp := r
	cp.Slots.Durations = append([]inter.Timestamp(nil), r.Slots.Durations...)
	cp.Economy.BakingBondCost = new(big.Int).Set(r.Economy.BakingBondCost)
	cp.Economy.EndorsementBondCost = new(big.Int).Set(r.Economy.EndorsementBondCost)
	cp.Economy.BakingReward = new(big.Int).Set(r.Economy.BakingReward)
	cp.Economy.EndorsementReward = new(big.Int).Set(r.Economy.EndorsementReward)
	return cp
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
