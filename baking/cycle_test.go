package baking

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/stretchr/testify/require"

	"github.com/bakerynet/go-bakery/bakery"
	"github.com/bakerynet/go-bakery/inter"
)

// TestLastOfACycle walks a whole fakenet cycle and checks that only its last
// level is flagged.
func TestLastOfACycle(t *testing.T) {
	require := require.New(t)
	rules := bakery.FakeNetRules()

	level := inter.Level{Height: 0, Cycle: 0, CyclePosition: 0}
	for position := uint32(0); position < rules.Cycles.Length; position++ {
		want := position == rules.Cycles.Length-1
		require.Equal(want, LastOfACycle(rules, level), "position %d", position)
		level = level.Next(rules.Cycles.Length)
	}

	// The walk above must have rolled over into cycle 1.
	require.Equal(idx.Epoch(1), level.Cycle)
	require.Equal(uint32(0), level.CyclePosition)
}

// TestDawnOfANewCycle verifies the completed-cycle report at both kinds of
// levels.
func TestDawnOfANewCycle(t *testing.T) {
	require := require.New(t)
	rules := bakery.FakeNetRules()

	mid := NewFakeContext(rules, inter.Level{Height: 20, Cycle: 1, CyclePosition: 4}, 0, FakeGenesisTime)
	_, dawn := DawnOfANewCycle(mid)
	require.False(dawn)

	last := NewFakeContext(rules, inter.Level{Height: 31, Cycle: 1, CyclePosition: rules.Cycles.Length - 1}, 0, FakeGenesisTime)
	cycle, dawn := DawnOfANewCycle(last)
	require.True(dawn)
	require.Equal(idx.Epoch(1), cycle)
}
