package inter

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// Level locates a block height within the chain's cycle structure.
// Levels are computed and stored by the chain context; the consensus kernel
// only ever reads them.
type Level struct {
	// Height is the absolute chain height, counted from genesis.
	Height idx.Block

	// Cycle is the index of the cycle this level belongs to.
	Cycle idx.Epoch

	// CyclePosition is the zero-based offset of this level inside its cycle,
	// so 0 <= CyclePosition < cycle length.
	CyclePosition uint32
}

// Next returns the level immediately after l under the given cycle length.
func (l Level) Next(cycleLength uint32) Level {
	next := Level{
		Height:        l.Height + 1,
		Cycle:         l.Cycle,
		CyclePosition: l.CyclePosition + 1,
	}
	if next.CyclePosition >= cycleLength {
		next.Cycle++
		next.CyclePosition = 0
	}
	return next
}

// String returns a compact representation for logging.
func (l Level) String() string {
	return fmt.Sprintf("%d (cycle %d, position %d)", l.Height, l.Cycle, l.CyclePosition)
}
