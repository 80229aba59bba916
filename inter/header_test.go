package inter

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func sampleHeader() *BlockHeader {
	return &BlockHeader{
		Predecessor: common.HexToHash("0x0102030405"),
		Time:        Timestamp(1608600000e9),
		Fitness:     EncodeFitness(77),
		Priority:    3,
		PowNonce:    [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
		Sig:         make([]byte, SigSize),
	}
}

// TestSealHash_excludesSignature verifies that the signed digest covers the
// shell and protocol parts but not the signature itself.
func TestSealHash_excludesSignature(t *testing.T) {
	require := require.New(t)

	h1 := sampleHeader()
	h2 := sampleHeader()
	h2.Sig[0] = 0xff

	require.Equal(h1.SealHash(), h2.SealHash())
	require.NotEqual(h1.Hash(), h2.Hash(), "block hash must cover the signature")

	// Every unsigned field moves the seal hash.
	mutations := []func(h *BlockHeader){
		func(h *BlockHeader) { h.Predecessor = common.HexToHash("0xff") },
		func(h *BlockHeader) { h.Time++ },
		func(h *BlockHeader) { h.Fitness = EncodeFitness(78) },
		func(h *BlockHeader) { h.Priority++ },
		func(h *BlockHeader) { h.PowNonce[0]++ },
	}
	for i, mutate := range mutations {
		h := sampleHeader()
		mutate(h)
		require.NotEqual(h1.SealHash(), h.SealHash(), "mutation %d", i)
	}
}

// TestHeaderSignRecover verifies that a signature over the seal hash
// recovers to the signer's public key.
func TestHeaderSignRecover(t *testing.T) {
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.NoError(err)

	h := sampleHeader()
	sig, err := crypto.Sign(h.SealHash().Bytes(), key)
	require.NoError(err)
	require.Len(sig, SigSize)

	recovered, err := crypto.Ecrecover(h.SealHash().Bytes(), sig)
	require.NoError(err)
	require.Equal(crypto.FromECDSAPub(&key.PublicKey), recovered)
}

// TestFitnessCodec verifies the 8-byte big-endian fitness round trip and the
// malformed cases.
func TestFitnessCodec(t *testing.T) {
	require := require.New(t)

	for _, fitness := range []int64{0, 1, 77, 1 << 40, -1} {
		b := EncodeFitness(fitness)
		require.Len(b, 8)
		decoded, err := DecodeFitness(b)
		require.NoError(err)
		require.Equal(fitness, decoded)
	}

	for _, malformed := range [][]byte{nil, {}, {1}, {1, 2, 3, 4, 5, 6, 7}, {1, 2, 3, 4, 5, 6, 7, 8, 9}} {
		_, err := DecodeFitness(malformed)
		require.Equal(ErrMalformedFitness, err)
	}
}

// TestEndorsementSealHash verifies that the endorsement digest depends on
// the level and on the exact slot set.
func TestEndorsementSealHash(t *testing.T) {
	require := require.New(t)

	base := Endorsement{
		Level: Level{Height: 100, Cycle: 2, CyclePosition: 10},
		Slots: []uint16{2, 5, 7},
	}

	same := base
	same.Slots = []uint16{2, 5, 7}
	require.Equal(base.SealHash(), same.SealHash())

	otherSlots := base
	otherSlots.Slots = []uint16{2, 5}
	require.NotEqual(base.SealHash(), otherSlots.SealHash())

	otherLevel := base
	otherLevel.Level.Height = 101
	require.NotEqual(base.SealHash(), otherLevel.SealHash())
}
