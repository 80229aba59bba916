package baking

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/ethereum/go-ethereum/common"

	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// FakeGenesisTime is the timestamp used as chain origin by fake networks and
// tests, so that every fakenet run starts from the same clock.
var FakeGenesisTime = inter.Timestamp(1608600000 * time.Second)

// Draw kinds, mixed into the fake oracle's hash so that baking and
// endorsement assignments at the same level are independent.
const (
	fakeBakingDraw      = 0xb0
	fakeEndorsementDraw = 0xe0
)

// FakeOracle is a deterministic in-memory RightsOracle for fake networks and
// tests. It assigns each (level, index) to a delegate by a weighted draw over
// a validator set: the draw hash is reduced modulo the total weight and the
// winner is the validator whose cumulative weight covers the draw. Stake-
// proportional and reproducible, which is all the kernel requires of the real
// snapshot mechanism.
type FakeOracle struct {
	validators *pos.Validators
	keys       map[idx.ValidatorID]delegatepk.PubKey
}

// NewFakeOracle builds a FakeOracle from delegate keys and their weights.
// Both maps must have the same key set.
func NewFakeOracle(keys map[idx.ValidatorID]delegatepk.PubKey, weights map[idx.ValidatorID]pos.Weight) *FakeOracle {
	builder := pos.NewBuilder()
	for id, weight := range weights {
		builder.Set(id, weight)
	}
	return &FakeOracle{
		validators: builder.Build(),
		keys:       keys,
	}
}

// BakingRightsOwner implements RightsOracle.
func (o *FakeOracle) BakingRightsOwner(level inter.Level, priority uint32) (delegatepk.PubKey, error) {
	return o.draw(level, fakeBakingDraw, uint64(priority))
}

// EndorsementRightsOwner implements RightsOracle.
func (o *FakeOracle) EndorsementRightsOwner(level inter.Level, slot uint16) (delegatepk.PubKey, error) {
	return o.draw(level, fakeEndorsementDraw, uint64(slot))
}

func (o *FakeOracle) draw(level inter.Level, kind byte, index uint64) (delegatepk.PubKey, error) {
	total := uint64(o.validators.TotalWeight())
	if total == 0 {
		return delegatepk.PubKey{}, fmt.Errorf("fake oracle has no stake")
	}

	h := hash.Of(
		bigendian.Uint64ToBytes(uint64(level.Height)),
		[]byte{kind},
		bigendian.Uint64ToBytes(index),
	)
	point := bigendian.BytesToUint64(h[:8]) % total

	var cumulative uint64
	for _, id := range o.validators.SortedIDs() {
		cumulative += uint64(o.validators.Get(id))
		if point < cumulative {
			key, ok := o.keys[id]
			if !ok {
				return delegatepk.PubKey{}, fmt.Errorf("fake oracle has no key for validator %d", id)
			}
			return key, nil
		}
	}
	// Unreachable: cumulative ends at total and point < total.
	return delegatepk.PubKey{}, fmt.Errorf("fake oracle draw out of range")
}

// FakeContext is an in-memory Context for fake networks and tests: fixed
// rules and chain position, plus a mutable balance table.
type FakeContext struct {
	rules     bakery.Rules
	level     inter.Level
	fitness   int64
	timestamp inter.Timestamp
	balances  map[common.Address]*big.Int
}

// NewFakeContext creates a context positioned at the given level, carrying
// the given current fitness and timestamp.
func NewFakeContext(rules bakery.Rules, level inter.Level, fitness int64, timestamp inter.Timestamp) *FakeContext {
	return &FakeContext{
		rules:     rules,
		level:     level,
		fitness:   fitness,
		timestamp: timestamp,
		balances:  map[common.Address]*big.Int{},
	}
}

// SetBalance funds a delegate's implicit account.
func (c *FakeContext) SetBalance(delegate common.Address, amount *big.Int) {
	c.balances[delegate] = new(big.Int).Set(amount)
}

// Balance returns a delegate's current balance (zero if unfunded).
func (c *FakeContext) Balance(delegate common.Address) *big.Int {
	if b, ok := c.balances[delegate]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Rules implements Context.
func (c *FakeContext) Rules() bakery.Rules { return c.rules }

// CurrentLevel implements Context.
func (c *FakeContext) CurrentLevel() inter.Level { return c.level }

// CurrentFitness implements Context.
func (c *FakeContext) CurrentFitness() int64 { return c.fitness }

// CurrentTimestamp implements Context.
func (c *FakeContext) CurrentTimestamp() inter.Timestamp { return c.timestamp }

// Spend implements Context. It debits the delegate's account, failing
// without mutation if the balance cannot cover the amount.
func (c *FakeContext) Spend(delegate common.Address, amount *big.Int) error {
	balance, ok := c.balances[delegate]
	if !ok || balance.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient balance of %s: have %v, need %v", delegate.Hex(), balance, amount)
	}
	c.balances[delegate] = new(big.Int).Sub(balance, amount)
	return nil
}
