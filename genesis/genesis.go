// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

// Package genesis reads balance files and writes the claim documents that
// hand each account its proof.
//
// A balance file is a JSON object {"balances": [[address, amount], ...]}.
// Amounts may be JSON numbers or decimal strings. The position of an entry
// in the file is its claim index.
package genesis

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

const maxAmountBits = 128

type Balance struct {
	Address string
	Amount  *uint256.Int
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrapf(ErrInvalidBalance, "%s", data)
	}
	if len(pair) != 2 {
		return errors.Wrapf(ErrInvalidBalance, "%s: want [address, amount]", data)
	}
	if err := json.Unmarshal(pair[0], &b.Address); err != nil {
		return errors.Wrapf(ErrInvalidBalance, "address %s", pair[0])
	}
	amount, err := parseAmount(pair[1])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}

func (b Balance) MarshalJSON() ([]byte, error) {
	if b.Amount == nil {
		return nil, errors.Wrapf(ErrInvalidBalance, "%s: nil amount", b.Address)
	}
	return json.Marshal([]string{b.Address, b.Amount.Dec()})
}

func parseAmount(raw json.RawMessage) (*uint256.Int, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, errors.Wrapf(ErrInvalidBalance, "amount %s", raw)
		}
	}
	value, ok := new(big.Int).SetString(text, 10)
	if !ok || value.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidBalance, "amount %s", raw)
	}
	if value.BitLen() > maxAmountBits {
		return nil, errors.Wrapf(ErrInvalidBalance, "amount %s exceeds 128 bits", raw)
	}
	amount, _ := uint256.FromBig(value)
	return amount, nil
}

type Config struct {
	Balances []Balance `json:"balances"`
}

func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode balances")
	}
	return &cfg, nil
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// LoadDir concatenates every balance file of dir in file name order.
// Subdirectories are skipped.
func LoadDir(dir string) (*Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	merged := &Config{}
	for _, name := range names {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		merged.Balances = append(merged.Balances, cfg.Balances...)
	}
	return merged, nil
}

// Records decodes every address with format. Entry i becomes the record of
// index i.
func (c *Config) Records(format ss58.Format) ([]bmd.Record, error) {
	records := make([]bmd.Record, len(c.Balances))
	for i, b := range c.Balances {
		account, err := ss58.Decode(b.Address, format)
		if err != nil {
			return nil, errors.Wrapf(err, "balance %d", i)
		}
		if b.Amount == nil {
			return nil, errors.Wrapf(ErrInvalidBalance, "balance %d: nil amount", i)
		}
		records[i] = bmd.Record{
			Index:   uint32(i),
			Account: account,
			Amount:  new(uint256.Int).Set(b.Amount),
		}
	}
	return records, nil
}

// Duplicates returns the addresses, in first-seen order, whose account
// appears in more than one entry.
func (c *Config) Duplicates(format ss58.Format) ([]string, error) {
	seen := make(map[ss58.AccountID]int, len(c.Balances))
	var dups []string
	for i, b := range c.Balances {
		account, err := ss58.Decode(b.Address, format)
		if err != nil {
			return nil, errors.Wrapf(err, "balance %d", i)
		}
		seen[account]++
		if seen[account] == 2 {
			dups = append(dups, b.Address)
		}
	}
	return dups, nil
}

// Total sums every amount.
func (c *Config) Total() *uint256.Int {
	total := new(uint256.Int)
	for _, b := range c.Balances {
		if b.Amount != nil {
			total.Add(total, b.Amount)
		}
	}
	return total
}
