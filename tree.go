// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package bmd

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"

	"github.com/bnb-chain/merkle-distributor/metrics"
)

// minChunkSize keeps tiny inputs from being split into one task per record.
const minChunkSize = 256

var _ DistributionTree = (*MerkleTree)(nil)

// MerkleTree is a binary merkle tree kept as levels: levels[0] holds the
// leaves in input order and the last level holds the root. When a level has
// an odd number of nodes the last one is promoted to the next level
// unchanged. A MerkleTree is never modified after Build returns.
type MerkleTree struct {
	levels  [][]common.Hash
	hasher  *Hasher
	metrics metrics.Metrics
}

// Build constructs a tree over leaves without reordering them.
func Build(leaves []common.Hash, opts ...Option) (*MerkleTree, error) {
	cfg := defaultTreeConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return build(cfg, append([]common.Hash(nil), leaves...))
}

// BuildFromRecords encodes every record and builds a tree over the leaves in
// record order.
func BuildFromRecords(records []Record, opts ...Option) (*MerkleTree, error) {
	cfg := defaultTreeConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	leaves, err := hashRecords(cfg, records)
	if err != nil {
		return nil, err
	}
	return build(cfg, leaves)
}

func build(cfg *treeConfig, leaves []common.Hash) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	start := time.Now()

	levels := [][]common.Hash{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([]common.Hash, 0, (len(current)+1)/2)
		for i := 0; i+1 < len(current); i += 2 {
			next = append(next, cfg.hasher.Combine(current[i], current[i+1]))
		}
		if len(current)%2 == 1 {
			next = append(next, current[len(current)-1])
		}
		levels = append(levels, next)
		current = next
	}

	tree := &MerkleTree{
		levels:  levels,
		hasher:  cfg.hasher,
		metrics: cfg.metrics,
	}
	tree.metrics.TreeLeaves(len(leaves))
	tree.metrics.TreeDepth(tree.Depth())
	tree.metrics.BuildDuration(time.Since(start))
	return tree, nil
}

func hashRecords(cfg *treeConfig, records []Record) ([]common.Hash, error) {
	leaves := make([]common.Hash, len(records))
	hashRange := func(start, end int) error {
		for i := start; i < end; i++ {
			leaf, err := encodeLeaf(cfg.hasher, records[i].Index, records[i].Account, records[i].Amount)
			if err != nil {
				return errors.Wrapf(err, "position %d", i)
			}
			leaves[i] = leaf
		}
		return nil
	}

	if (cfg.pool == nil && cfg.workers <= 1) || len(records) < cfg.parallelThreshold {
		if err := hashRange(0, len(records)); err != nil {
			return nil, err
		}
		return leaves, nil
	}

	pool := cfg.pool
	if pool == nil {
		p, err := ants.NewPool(cfg.workers)
		if err != nil {
			return nil, errors.Wrap(err, "create worker pool")
		}
		defer p.Release()
		pool = p
	}

	chunkSize := (len(records) + pool.Cap() - 1) / pool.Cap()
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	chunks := (len(records) + chunkSize - 1) / chunkSize
	errs := make([]error, chunks)

	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		c := c
		start, end := c*chunkSize, (c+1)*chunkSize
		if end > len(records) {
			end = len(records)
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			errs[c] = hashRange(start, end)
		})
		if err != nil {
			wg.Done()
			errs[c] = errors.Wrap(err, "submit leaf hashing task")
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return leaves, nil
}

// Size returns the number of leaves.
func (tree *MerkleTree) Size() int {
	return len(tree.levels[0])
}

// Depth returns the number of levels above the leaves.
func (tree *MerkleTree) Depth() int {
	return len(tree.levels) - 1
}

func (tree *MerkleTree) Root() common.Hash {
	return tree.levels[len(tree.levels)-1][0]
}

// Leaves returns a copy of the leaf level.
func (tree *MerkleTree) Leaves() []common.Hash {
	return append([]common.Hash(nil), tree.levels[0]...)
}

func (tree *MerkleTree) Leaf(position int) (common.Hash, error) {
	if position < 0 || position >= tree.Size() {
		return common.Hash{}, errors.Wrapf(ErrIndexOutOfRange, "position %d, tree has %d leaves", position, tree.Size())
	}
	return tree.levels[0][position], nil
}

// Position returns the position of the first leaf equal to leaf.
func (tree *MerkleTree) Position(leaf common.Hash) (int, bool) {
	for i, l := range tree.levels[0] {
		if l == leaf {
			return i, true
		}
	}
	return 0, false
}

// GetProof returns the sibling hashes on the path from the leaf at position
// to the root, lowest level first. Levels where the node was promoted
// without a sibling contribute nothing.
func (tree *MerkleTree) GetProof(position int) (Proof, error) {
	if position < 0 || position >= tree.Size() {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "position %d, tree has %d leaves", position, tree.Size())
	}

	proof := make(Proof, 0, tree.Depth())
	for level := 0; level < tree.Depth(); level++ {
		nodes := tree.levels[level]
		if sibling := position ^ 1; sibling < len(nodes) {
			proof = append(proof, nodes[sibling])
		}
		position /= 2
	}
	tree.metrics.ProofGenerated()
	return proof, nil
}

// VerifyProof checks proof for leaf against the root of this tree.
func (tree *MerkleTree) VerifyProof(leaf common.Hash, proof Proof) bool {
	ok := verifyLeaf(tree.hasher, leaf, proof, tree.Root())
	tree.metrics.ProofVerified(ok)
	return ok
}
