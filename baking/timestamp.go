package baking

import (
	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
)

// MinimalTime computes the earliest timestamp a block at the given priority
// may carry, counted from the predecessor's timestamp.
//
// The rules list one minimal delay per priority slot; the block at priority p
// waits for the delays of slots 1..p+1. Once the list runs out, the last
// listed delay applies to every remaining slot, added as a single
// multiplication so that an absurdly large priority does not cost a loop of
// the same size. An empty list falls back to bakery.DefaultSlotDuration.
//
// Fails with inter.ErrTimestampOverflow if the accumulated time does not fit
// a Timestamp.
func MinimalTime(rules bakery.Rules, priority uint32, predecessor inter.Timestamp) (inter.Timestamp, error) {
	durations := rules.Slots.Durations
	if len(durations) == 0 {
		durations = []inter.Timestamp{bakery.DefaultSlotDuration}
	}

	minimal := predecessor
	remaining := uint64(priority) + 1
	var err error

	for _, d := range durations {
		if remaining == 0 {
			return minimal, nil
		}
		minimal, err = minimal.Add(d)
		if err != nil {
			return 0, err
		}
		remaining--
	}

	// The list is exhausted: the last duration covers all remaining slots.
	last := durations[len(durations)-1]
	rest, err := last.Mul(remaining)
	if err != nil {
		return 0, err
	}
	return minimal.Add(rest)
}

// CheckTimestamp validates a header's timestamp against the minimal time for
// its priority. A timestamp exactly equal to the minimal time is valid.
func CheckTimestamp(rules bakery.Rules, header *inter.BlockHeader, predecessor inter.Timestamp) error {
	minimal, err := MinimalTime(rules, header.Priority, predecessor)
	if err != nil {
		return err
	}
	if header.Time < minimal {
		return &TimestampTooEarlyError{
			Minimum:  minimal,
			Provided: header.Time,
		}
	}
	return nil
}
