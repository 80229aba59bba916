package inter

import (
	"errors"
	"math"
	"time"
)

// Timestamp is a block/operation time, expressed in nanoseconds since the
// Unix epoch. All consensus-critical time arithmetic goes through the checked
// helpers below, since a wrapped-around timestamp would silently pass the
// minimal-time check on every node that wraps the same way.
type Timestamp uint64

// MaxTimestamp is the highest representable Timestamp.
const MaxTimestamp = Timestamp(math.MaxUint64)

// ErrTimestampOverflow is returned by checked timestamp arithmetic when the
// result would wrap around.
var ErrTimestampOverflow = errors.New("timestamp addition overflow")

// FromTime converts a time.Time into a Timestamp.
// Times before the Unix epoch are clamped to zero.
func FromTime(t time.Time) Timestamp {
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}
	return Timestamp(ns)
}

// Time converts the Timestamp back into a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t/1e9), int64(t%1e9))
}

// Add returns t + d, failing with ErrTimestampOverflow if the sum wraps.
func (t Timestamp) Add(d Timestamp) (Timestamp, error) {
	sum := t + d
	if sum < t {
		return 0, ErrTimestampOverflow
	}
	return sum, nil
}

// Mul returns t * n, failing with ErrTimestampOverflow if the product wraps.
// Used to apply a repeated slot duration in one step instead of iterating.
func (t Timestamp) Mul(n uint64) (Timestamp, error) {
	if n == 0 || t == 0 {
		return 0, nil
	}
	product := t * Timestamp(n)
	if product/Timestamp(n) != t {
		return 0, ErrTimestampOverflow
	}
	return product, nil
}
