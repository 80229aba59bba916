package baking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// RightsOracle resolves the stake-snapshot-derived assignment of rights.
// The snapshot mechanism itself lives outside this kernel; the oracle is the
// kernel's only view of it. Lookups may be I/O-bound but must be
// deterministic: every node asking for the same (level, index) must get the
// same delegate.
type RightsOracle interface {
	// BakingRightsOwner returns the delegate owning the given baking
	// priority at the given level.
	BakingRightsOwner(level inter.Level, priority uint32) (delegatepk.PubKey, error)

	// EndorsementRightsOwner returns the delegate owning the given
	// endorsement slot at the given level.
	EndorsementRightsOwner(level inter.Level, slot uint16) (delegatepk.PubKey, error)
}

// Context is the kernel's view of the chain's ledger state. It is treated as
// a sequentially-threaded value: one validation call owns it exclusively and
// never mutates it from two code paths at once.
type Context interface {
	// Rules returns the network rules in force at the current level.
	Rules() bakery.Rules

	// CurrentLevel returns the level being validated against.
	CurrentLevel() inter.Level

	// CurrentFitness returns the fitness recorded by the last accepted block.
	CurrentFitness() int64

	// CurrentTimestamp returns the timestamp of the last accepted block.
	CurrentTimestamp() inter.Timestamp

	// Spend debits amount from the delegate's implicit account. It returns
	// an error (and leaves balances untouched) if funds are insufficient.
	Spend(delegate common.Address, amount *big.Int) error
}
