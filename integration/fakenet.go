// Package integration assembles runnable network setups out of the
// consensus kernel's pieces. For now that means fake networks: deterministic
// delegate key sets and a stake-weighted rights oracle over them, so that
// every fakenet run (and every test) reproduces the same assignment.
package integration

import (
	"crypto/ecdsa"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bakerynet/go-bakery/baking"
	"github.com/bakerynet/go-bakery/inter/delegatepk"
)

// fakeKeySeed namespaces the fakenet key derivation, so fakenet keys can
// never collide with anything derived elsewhere.
var fakeKeySeed = []byte("bakery-fakenet-delegate")

// FakeKey derives the deterministic private key of fakenet delegate id.
// Everyone running a fakenet gets the same delegates, which makes fakenet
// blocks reproducible and lets tooling sign for any delegate it likes.
func FakeKey(id idx.ValidatorID) *ecdsa.PrivateKey {
	seed := crypto.Keccak256(fakeKeySeed, bigendian.Uint32ToBytes(uint32(id)))
	for {
		key, err := crypto.ToECDSA(seed)
		if err == nil {
			return key
		}
		// Out of curve range, about a 2^-128 event. Re-hash and retry.
		seed = crypto.Keccak256(seed)
	}
}

// FakeNet builds a fake network of n equally weighted delegates, returning
// the rights oracle over them and the delegates' public keys, indexed by
// validator id minus one.
func FakeNet(n int) (*baking.FakeOracle, []delegatepk.PubKey) {
	keys := make(map[idx.ValidatorID]delegatepk.PubKey, n)
	weights := make(map[idx.ValidatorID]pos.Weight, n)
	pubs := make([]delegatepk.PubKey, n)

	for i := 0; i < n; i++ {
		id := idx.ValidatorID(i + 1)
		pub := delegatepk.FromECDSA(&FakeKey(id).PublicKey)
		keys[id] = pub
		weights[id] = 100
		pubs[i] = pub
	}
	return baking.NewFakeOracle(keys, weights), pubs
}
