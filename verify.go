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

// Verify recomputes the leaf for (index, account, amount), folds proof into
// it and reports whether the result equals root. A proof that does not match
// is a false result; only a malformed record is an error.
func Verify(index uint32, account ss58.AccountID, amount *uint256.Int, proof Proof, root common.Hash) (bool, error) {
	leaf, err := EncodeLeaf(index, account, amount)
	if err != nil {
		return false, err
	}
	return VerifyLeaf(leaf, proof, root), nil
}

// VerifyAddress is Verify for a chain address string.
func VerifyAddress(index uint32, address string, format ss58.Format, amount *uint256.Int, proof Proof, root common.Hash) (bool, error) {
	account, err := ss58.Decode(address, format)
	if err != nil {
		return false, err
	}
	return Verify(index, account, amount, proof, root)
}

// VerifyLeaf checks a proof for a leaf hash the caller already trusts.
func VerifyLeaf(leaf common.Hash, proof Proof, root common.Hash) bool {
	return verifyLeaf(defaultHasher, leaf, proof, root)
}

func verifyLeaf(hasher *Hasher, leaf common.Hash, proof Proof, root common.Hash) bool {
	computed := leaf
	for _, element := range proof {
		computed = hasher.Combine(computed, element)
	}
	return computed == root
}
