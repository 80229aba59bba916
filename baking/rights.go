package baking

import (
	"bytes"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// CheckBakingRights verifies that the priority claimed by a header is a slot
// the chain actually assigned, and that the header's timestamp respects the
// minimal time for that priority. It returns the delegate owning the slot —
// the expected signer of the header. Signature verification is not done
// here; it belongs to the validity pipeline, which needs the block hash.
func CheckBakingRights(ctx Context, oracle RightsOracle, header *inter.BlockHeader, predecessor inter.Timestamp) (delegatepk.PubKey, error) {
	owner, err := oracle.BakingRightsOwner(ctx.CurrentLevel(), header.Priority)
	if err != nil {
		return delegatepk.PubKey{}, err
	}
	if err := CheckTimestamp(ctx.Rules(), header, predecessor); err != nil {
		return delegatepk.PubKey{}, err
	}
	return owner, nil
}

// CheckEndorsementRights verifies that every slot exercised by an endorsement
// at the given level belongs to one and the same delegate, and returns that
// delegate's key.
//
// Slot bounds are checked first. Ownership lookups are independent oracle
// reads with no ordering dependency, so they are dispatched concurrently and
// joined before the consistency check. On inconsistency the error lists every
// distinct delegate found, in slot encounter order.
func CheckEndorsementRights(ctx Context, oracle RightsOracle, level inter.Level, slots []uint16) (delegatepk.PubKey, error) {
	if len(slots) == 0 {
		return delegatepk.PubKey{}, &EmptyEndorsementError{}
	}

	maxSlot := ctx.Rules().Slots.MaxSigningSlot
	for _, slot := range slots {
		if slot > maxSlot {
			return delegatepk.PubKey{}, &InvalidEndorsementSlotError{
				Maximum:  maxSlot,
				Provided: slot,
			}
		}
	}

	owners := make([]delegatepk.PubKey, len(slots))
	errs := make([]error, len(slots))

	var wg sync.WaitGroup
	for i, slot := range slots {
		wg.Add(1)
		go func(i int, slot uint16) {
			defer wg.Done()
			owners[i], errs[i] = oracle.EndorsementRightsOwner(level, slot)
		}(i, slot)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return delegatepk.PubKey{}, err
		}
	}

	// Keys must match byte for byte, not merely hash to the same address.
	first := owners[0]
	consistent := true
	for _, owner := range owners[1:] {
		if owner.Type != first.Type || !bytes.Equal(owner.Raw, first.Raw) {
			consistent = false
			break
		}
	}
	if consistent {
		return first, nil
	}

	return delegatepk.PubKey{}, &InconsistentEndorsementError{
		Delegates: distinctAddresses(owners),
	}
}

// distinctAddresses reduces the slot owners to their public key hashes,
// deduplicated, preserving encounter order.
func distinctAddresses(owners []delegatepk.PubKey) []common.Address {
	seen := make(map[common.Address]bool, len(owners))
	distinct := make([]common.Address, 0, len(owners))
	for _, owner := range owners {
		addr := owner.Address()
		if !seen[addr] {
			seen[addr] = true
			distinct = append(distinct, addr)
		}
	}
	return distinct
}
