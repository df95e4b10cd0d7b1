// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package bmd

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bnb-chain/merkle-distributor/ss58"
)

const (
	indexSize  = 4
	amountSize = 16
	amountBits = amountSize * 8

	// LeafDataSize is the length of an encoded record before hashing.
	LeafDataSize = indexSize + ss58.AccountIDLength + amountSize
)

// LeafData returns the canonical encoding of a record:
// index (4 bytes) || account (32 bytes) || amount (16 bytes), big-endian.
func LeafData(index uint32, account ss58.AccountID, amount *uint256.Int) ([]byte, error) {
	if amount == nil {
		return nil, errors.Wrap(ErrInvalidInput, "missing amount")
	}
	if amount.BitLen() > amountBits {
		return nil, errors.Wrapf(ErrInvalidInput, "amount %s exceeds %d bits", amount.ToBig(), amountBits)
	}

	data := make([]byte, LeafDataSize)
	binary.BigEndian.PutUint32(data[:indexSize], index)
	copy(data[indexSize:], account[:])
	word := amount.Bytes32()
	copy(data[indexSize+ss58.AccountIDLength:], word[len(word)-amountSize:])
	return data, nil
}

// EncodeLeaf hashes the canonical encoding of a record with Keccak-256.
func EncodeLeaf(index uint32, account ss58.AccountID, amount *uint256.Int) (common.Hash, error) {
	return encodeLeaf(defaultHasher, index, account, amount)
}

// EncodeAddressLeaf decodes a chain address in the given format and encodes
// the resulting record.
func EncodeAddressLeaf(index uint32, address string, format ss58.Format, amount *uint256.Int) (common.Hash, error) {
	account, err := ss58.Decode(address, format)
	if err != nil {
		return common.Hash{}, err
	}
	return EncodeLeaf(index, account, amount)
}

func encodeLeaf(hasher *Hasher, index uint32, account ss58.AccountID, amount *uint256.Int) (common.Hash, error) {
	data, err := LeafData(index, account, amount)
	if err != nil {
		return common.Hash{}, errors.Wrapf(err, "record %d", index)
	}
	return common.BytesToHash(hasher.Hash(data)), nil
}
