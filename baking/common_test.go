package baking

import (
	"crypto/ecdsa"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bakerynet/go-bakery/inter"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// genDelegate generates a fresh delegate keypair for tests.
func genDelegate(t *testing.T) (*ecdsa.PrivateKey, delegatepk.PubKey) {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	return key, delegatepk.FromECDSA(&key.PublicKey)
}

// mapOracle is a RightsOracle with explicitly pinned assignments, for tests
// that need full control over who owns which slot.
type mapOracle struct {
	baking      map[uint32]delegatepk.PubKey
	endorsement map[uint16]delegatepk.PubKey
}

func (o *mapOracle) BakingRightsOwner(level inter.Level, priority uint32) (delegatepk.PubKey, error) {
	return o.baking[priority], nil
}

func (o *mapOracle) EndorsementRightsOwner(level inter.Level, slot uint16) (delegatepk.PubKey, error) {
	return o.endorsement[slot], nil
}

// fakeNetwork builds a FakeOracle over n equally-weighted delegates and
// returns the private keys by validator id.
func fakeNetwork(t *testing.T, n int) (*FakeOracle, map[idx.ValidatorID]*ecdsa.PrivateKey) {
	t.Helper()
	keys := make(map[idx.ValidatorID]delegatepk.PubKey, n)
	privs := make(map[idx.ValidatorID]*ecdsa.PrivateKey, n)
	weights := make(map[idx.ValidatorID]pos.Weight, n)
	for i := 1; i <= n; i++ {
		id := idx.ValidatorID(i)
		priv, pub := genDelegate(t)
		keys[id] = pub
		privs[id] = priv
		weights[id] = 100
	}
	return NewFakeOracle(keys, weights), privs
}

// testLevel is an arbitrary mid-cycle level used where the exact position
// does not matter.
var testLevel = inter.Level{Height: 4242, Cycle: 1, CyclePosition: 145}
