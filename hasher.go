// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package bmd

import (
	"bytes"
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewHasherPool returns a Hasher that draws hash states from a pool, so one
// Hasher can be shared by concurrent readers of a tree.
func NewHasherPool(init func() hash.Hash) *Hasher {
	return &Hasher{
		pool: &sync.Pool{New: func() interface{} { return init() }},
	}
}

// NewKeccakHasher returns a pooled Keccak-256 hasher.
func NewKeccakHasher() *Hasher {
	return NewHasherPool(func() hash.Hash { return crypto.NewKeccakState() })
}

var defaultHasher = NewKeccakHasher()

type Hasher struct {
	pool *sync.Pool
}

func (h *Hasher) Hash(inputs ...[]byte) []byte {
	hasher := h.pool.Get().(hash.Hash)
	defer h.pool.Put(hasher)

	hasher.Reset()
	for i := range inputs {
		hasher.Write(inputs[i])
	}
	return hasher.Sum(nil)
}

// Combine hashes two nodes into their parent. The smaller value, compared as
// an unsigned big-endian integer, always goes first, so the parent does not
// depend on which child sat on the left.
func (h *Hasher) Combine(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return common.BytesToHash(h.Hash(a[:], b[:]))
}

// Combine is Hasher.Combine with Keccak-256.
func Combine(a, b common.Hash) common.Hash {
	return defaultHasher.Combine(a, b)
}
