package baking

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
)

// LastOfACycle reports whether a level is the final level of its cycle.
func LastOfACycle(rules bakery.Rules, level inter.Level) bool {
	return level.CyclePosition+1 == rules.Cycles.Length
}

// DawnOfANewCycle returns the identifier of the cycle completed by the
// current level, if the current level is the last of its cycle. Cycle-end
// bookkeeping (snapshot rotation, reward settlement) keys off this.
func DawnOfANewCycle(ctx Context) (idx.Epoch, bool) {
	level := ctx.CurrentLevel()
	if !LastOfACycle(ctx.Rules(), level) {
		return 0, false
	}
	return level.Cycle, true
}
