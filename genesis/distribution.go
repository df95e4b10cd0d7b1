// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package genesis

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

// Claim is what one account needs to claim: its index, amount in decimal
// and the proof as 0x hex strings.
type Claim struct {
	Index  uint32   `json:"index"`
	Amount string   `json:"amount"`
	Proof  []string `json:"proof"`
}

// Distribution is the document published alongside a root.
type Distribution struct {
	MerkleRoot string           `json:"merkleRoot"`
	TokenTotal string           `json:"tokenTotal"`
	Claims     map[string]Claim `json:"claims"`
}

// NewDistribution builds the claim document of tree. records[i] must be the
// record whose leaf sits at position i, which holds for a tree built by
// bmd.BuildFromRecords(records). Addresses are rendered in format and must
// be unique.
func NewDistribution(tree bmd.DistributionTree, records []bmd.Record, format ss58.Format) (*Distribution, error) {
	if tree.Size() != len(records) {
		return nil, errors.Wrapf(ErrTreeMismatch, "tree has %d leaves, %d records", tree.Size(), len(records))
	}

	total := new(uint256.Int)
	claims := make(map[string]Claim, len(records))
	for i, r := range records {
		leaf, err := r.Leaf()
		if err != nil {
			return nil, err
		}
		if got, _ := tree.Leaf(i); got != leaf {
			return nil, errors.Wrapf(ErrTreeMismatch, "record %d is not leaf %d", r.Index, i)
		}
		address, err := ss58.Encode(r.Account, format)
		if err != nil {
			return nil, err
		}
		if _, ok := claims[address]; ok {
			return nil, errors.Wrapf(ErrDuplicateAddress, "%s", address)
		}
		proof, err := tree.GetProof(i)
		if err != nil {
			return nil, err
		}
		claims[address] = Claim{
			Index:  r.Index,
			Amount: r.Amount.Dec(),
			Proof:  proof.Hex(),
		}
		total.Add(total, r.Amount)
	}

	return &Distribution{
		MerkleRoot: tree.Root().Hex(),
		TokenTotal: total.Dec(),
		Claims:     claims,
	}, nil
}

// Root parses MerkleRoot.
func (d *Distribution) Root() (common.Hash, error) {
	return bmd.ParseHash(d.MerkleRoot)
}

// Verify checks the claim published for address against the root.
func (d *Distribution) Verify(address string, format ss58.Format) (bool, error) {
	claim, ok := d.Claims[address]
	if !ok {
		return false, nil
	}
	root, err := d.Root()
	if err != nil {
		return false, err
	}
	amount, err := uint256.FromDecimal(claim.Amount)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidBalance, "claim of %s: amount %q", address, claim.Amount)
	}
	proof, err := bmd.ParseProof(claim.Proof)
	if err != nil {
		return false, err
	}
	return bmd.VerifyAddress(claim.Index, address, format, amount, proof, root)
}

func (d *Distribution) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func ReadDistribution(r io.Reader) (*Distribution, error) {
	var d Distribution
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode distribution")
	}
	return &d, nil
}
