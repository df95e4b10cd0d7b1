package bmd

import (
	"crypto/sha256"
	"hash"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestHasher_Hash(t *testing.T) {
	pool := NewKeccakHasher()
	require.Equal(t, crypto.Keccak256([]byte("val0")), pool.Hash([]byte("val0")))
	require.Equal(t, crypto.Keccak256([]byte("val0val1")), pool.Hash([]byte("val0"), []byte("val1")))

	sha := NewHasherPool(func() hash.Hash { return sha256.New() })
	sum := sha256.Sum256([]byte{2})
	require.Equal(t, sum[:], sha.Hash([]byte{2}))
}

func TestCombineSortsChildren(t *testing.T) {
	l0 := hexHash("0x7fd1b0463fed6a0513d92a16d512f6111a00e6a2dda492e43e655754d5e73553")
	l1 := hexHash("0x25edf9a5bfb6c1640282fbf6c2d78a2b5b34093fdb0604e6e1105e3332b7522d")
	want := hexHash("0x5ad0f5c858b43c4830d647357f1677841821a8729736e4282664661b651a9588")

	require.Equal(t, want, Combine(l0, l1))
	require.Equal(t, want, Combine(l1, l0))
	require.Equal(t, crypto.Keccak256Hash(l1[:], l0[:]), want)

	same := Combine(l0, l0)
	require.Equal(t, crypto.Keccak256Hash(l0[:], l0[:]), same)
}

func TestHasherConcurrentUse(t *testing.T) {
	hasher := NewKeccakHasher()
	a, b := common.Hash{1}, common.Hash{2}
	want := hasher.Combine(a, b)

	var wg sync.WaitGroup
	results := make([]common.Hash, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = hasher.Combine(b, a)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		require.Equal(t, want, got)
	}
}
