// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bnb-chain/merkle-distributor/utils"
)

const (
	bitmapWordBits = 32
)

var (
	nextIDKey         = []byte("next")
	distributorPrefix = []byte("d")
	bitmapPrefix      = []byte("b")
)

func distributorKey(id uint32) []byte {
	return append(utils.CopyBytes(distributorPrefix), utils.Uint32ToBytes(id)...)
}

// bitmapKey addresses the 32-bit word holding the claimed flag of index.
func bitmapKey(id uint32, index uint32) []byte {
	key := append(utils.CopyBytes(bitmapPrefix), utils.Uint32ToBytes(id)...)
	return append(key, utils.Uint32ToBytes(index/bitmapWordBits)...)
}

func bitmapMask(index uint32) uint32 {
	return 1 << (index % bitmapWordBits)
}

// storedDistributor is the rlp layout of a Distributor.
type storedDistributor struct {
	Root        common.Hash
	Description []byte
	Currency    string
	Amount      *big.Int
	Claimed     *big.Int
	Withdrawn   *big.Int
	Charged     bool
}

func encodeDistributor(d *Distributor) ([]byte, error) {
	return rlp.EncodeToBytes(&storedDistributor{
		Root:        d.Root,
		Description: []byte(d.Description),
		Currency:    d.Currency,
		Amount:      d.Amount.ToBig(),
		Claimed:     d.Claimed.ToBig(),
		Withdrawn:   d.Withdrawn.ToBig(),
		Charged:     d.Charged,
	})
}

func decodeDistributor(id uint32, data []byte) (*Distributor, error) {
	var stored storedDistributor
	if err := rlp.DecodeBytes(data, &stored); err != nil {
		return nil, errors.Wrapf(ErrCorruptedDistributor, "distributor %d: %v", id, err)
	}
	d := &Distributor{
		ID:          id,
		Root:        stored.Root,
		Description: string(stored.Description),
		Currency:    stored.Currency,
		Charged:     stored.Charged,
	}
	var overflow bool
	for _, f := range []struct {
		dst **uint256.Int
		src *big.Int
	}{
		{&d.Amount, stored.Amount},
		{&d.Claimed, stored.Claimed},
		{&d.Withdrawn, stored.Withdrawn},
	} {
		*f.dst, overflow = uint256.FromBig(f.src)
		if overflow {
			return nil, errors.Wrapf(ErrCorruptedDistributor, "distributor %d: amount overflows", id)
		}
	}
	return d, nil
}
