// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package bmd

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bnb-chain/merkle-distributor/ss58"
)

type (
	// Record is one entitlement committed by the tree. Index is assigned by
	// the caller and should be unique; it is not the tree position.
	Record struct {
		Index   uint32
		Account ss58.AccountID
		Amount  *uint256.Int
	}

	DistributionTree interface {
		Size() int
		Depth() int
		Root() common.Hash
		Leaf(position int) (common.Hash, error)
		Position(leaf common.Hash) (int, bool)
		GetProof(position int) (Proof, error)
		VerifyProof(leaf common.Hash, proof Proof) bool
	}
)

// Leaf returns the leaf hash committing to r.
func (r Record) Leaf() (common.Hash, error) {
	return EncodeLeaf(r.Index, r.Account, r.Amount)
}
