package baking

import (
	"math/big"

	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// PayBakingBond collects the baking bond for a validated header. Priorities
// at or beyond the first free baking slot are exempt; below it the bond is
// debited from the baker's implicit account. Returns the amount debited.
//
// This runs only after CheckBlockValidity has succeeded, so a failed
// validation never touches balances.
func PayBakingBond(ctx Context, header *inter.BlockHeader, baker delegatepk.PubKey) (*big.Int, error) {
	economy := ctx.Rules().Economy
	if header.Priority >= economy.FirstFreeBakingSlot {
		return new(big.Int), nil
	}
	if err := ctx.Spend(baker.Address(), economy.BakingBondCost); err != nil {
		return nil, &CannotPayBakingBondError{}
	}
	return new(big.Int).Set(economy.BakingBondCost), nil
}

// PayEndorsementBond collects the endorsement bond from a delegate. Unlike
// baking, every endorsement is bonded. Returns the amount debited.
func PayEndorsementBond(ctx Context, endorser delegatepk.PubKey) (*big.Int, error) {
	cost := ctx.Rules().Economy.EndorsementBondCost
	if err := ctx.Spend(endorser.Address(), cost); err != nil {
		return nil, &CannotPayEndorsementBondError{}
	}
	return new(big.Int).Set(cost), nil
}

// BaseBakingReward returns the reward for baking a block at the given
// priority. Bonded priorities earn the bond back on top of the base reward;
// free slots earn the base reward alone.
func BaseBakingReward(rules bakery.Rules, priority uint32) *big.Int {
	economy := rules.Economy
	if priority < economy.FirstFreeBakingSlot {
		return new(big.Int).Add(economy.BakingBondCost, economy.BakingReward)
	}
	return new(big.Int).Set(economy.BakingReward)
}

// EndorsementReward returns the reward for endorsing a block baked at the
// given priority: the endorsement reward constant divided by (priority + 1),
// rounded down. The reward thins out as the endorsed block's priority grows;
// no upper bound is applied to the priority. A negative priority is a caller
// contract violation.
func EndorsementReward(rules bakery.Rules, blockPriority int64) (*big.Int, error) {
	if blockPriority < 0 {
		return nil, &IncorrectPriorityError{Provided: blockPriority}
	}
	return new(big.Int).Div(
		rules.Economy.EndorsementReward,
		big.NewInt(blockPriority+1),
	), nil
}
