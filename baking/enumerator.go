package baking

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// OwnerAt returns the delegate assigned to the index-th baking priority at a
// level. The priority sequence is conceptually unbounded; rather than
// materializing it, callers probe indices on demand, one oracle read per
// index.
func OwnerAt(oracle RightsOracle, level inter.Level, index uint32) (delegatepk.PubKey, error) {
	return oracle.BakingRightsOwner(level, index)
}

// FirstMatchingIndices scans priorities 0..maxPriority-1 at a level and
// collects, in ascending order, every index owned by the given delegate.
// It never evaluates the sequence beyond maxPriority.
//
// Bake schedulers use this to discover a delegate's upcoming slots; the scan
// is pure apart from the oracle reads.
func FirstMatchingIndices(oracle RightsOracle, delegate common.Address, level inter.Level, maxPriority uint32) ([]uint32, error) {
	var matches []uint32
	for index := uint32(0); index < maxPriority; index++ {
		owner, err := OwnerAt(oracle, level, index)
		if err != nil {
			return nil, err
		}
		if owner.Address() == delegate {
			matches = append(matches, index)
		}
	}
	return matches, nil
}
