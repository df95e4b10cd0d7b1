// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package bmd

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Proof is an ordered list of sibling hashes from a leaf up to the root.
// It marshals to JSON as a list of 0x-prefixed hex strings.
type Proof []common.Hash

// Hex returns each element as "0x" followed by 64 hex characters.
func (p Proof) Hex() []string {
	out := make([]string, len(p))
	for i, h := range p {
		out[i] = h.Hex()
	}
	return out
}

// ParseHash decodes a 0x-prefixed 32-byte hex string.
func ParseHash(s string) (common.Hash, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, errors.Wrapf(ErrInvalidInput, "hash %q: %v", s, err)
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, errors.Wrapf(ErrInvalidInput, "hash %q has %d bytes, want %d", s, len(raw), common.HashLength)
	}
	return common.BytesToHash(raw), nil
}

// ParseProof decodes hex proof elements. Any element that is not exactly 32
// bytes fails the whole proof.
func ParseProof(elements []string) (Proof, error) {
	proof := make(Proof, len(elements))
	for i, e := range elements {
		h, err := ParseHash(e)
		if err != nil {
			return nil, errors.Wrapf(err, "proof element %d", i)
		}
		proof[i] = h
	}
	return proof, nil
}
