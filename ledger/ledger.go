// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

// Package ledger keeps the claim state of Merkle distributors: which roots
// are registered, whether they are funded and which indices have claimed.
package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/database"
	"github.com/bnb-chain/merkle-distributor/metrics"
	"github.com/bnb-chain/merkle-distributor/ss58"
	"github.com/bnb-chain/merkle-distributor/utils"
)

// Distributor is one registered distribution.
type Distributor struct {
	ID          uint32
	Root        common.Hash
	Description string
	Currency    string
	// Amount is the total funded by Charge.
	Amount    *uint256.Int
	Claimed   *uint256.Int
	Withdrawn *uint256.Int
	Charged   bool
}

// Balance is what the distributor still holds. It is zero until charged.
func (d *Distributor) Balance() *uint256.Int {
	if !d.Charged {
		return new(uint256.Int)
	}
	spent := new(uint256.Int).Add(d.Claimed, d.Withdrawn)
	if spent.Gt(d.Amount) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(d.Amount, spent)
}

func (d *Distributor) copy() *Distributor {
	cpy := *d
	cpy.Amount = new(uint256.Int).Set(d.Amount)
	cpy.Claimed = new(uint256.Int).Set(d.Claimed)
	cpy.Withdrawn = new(uint256.Int).Set(d.Withdrawn)
	return &cpy
}

// Ledger stores distributors in a database.Store. All methods are safe for
// concurrent use, also by several Ledgers sharing one store: every
// mutation reads and writes its keys inside a single store Update.
type Ledger struct {
	db        database.Store
	cache     *lru.Cache
	cacheSize int
	logger    *zap.Logger
	metrics   metrics.Metrics
}

func New(db database.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		db:        db,
		cacheSize: defaultCacheSize,
		logger:    zap.NewNop(),
		metrics:   metrics.Nop{},
	}
	for _, opt := range opts {
		opt(l)
	}
	cache, err := lru.New(l.cacheSize)
	if err != nil {
		return nil, err
	}
	l.cache = cache
	return l, nil
}

// Create registers a distributor for root and returns its id. Ids are
// assigned sequentially from zero.
func (l *Ledger) Create(root common.Hash, description, currency string, amount *uint256.Int) (uint32, error) {
	if len(description) > MaxDescriptionLength {
		return 0, errors.Wrapf(ErrBadDescription, "%d bytes, limit %d", len(description), MaxDescriptionLength)
	}
	if amount == nil {
		return 0, errors.Wrap(ErrInvalidAmount, "nil amount")
	}

	var d *Distributor
	err := l.db.Update([][]byte{nextIDKey}, func(txn database.Txn) error {
		id, err := readNextID(txn)
		if err != nil {
			return err
		}
		d = &Distributor{
			ID:          id,
			Root:        root,
			Description: description,
			Currency:    currency,
			Amount:      new(uint256.Int).Set(amount),
			Claimed:     new(uint256.Int),
			Withdrawn:   new(uint256.Int),
		}
		if err := stage(txn, d); err != nil {
			return err
		}
		txn.Set(nextIDKey, utils.Uint32ToBytes(id+1))
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "create distributor")
	}
	l.cache.Add(d.ID, d.copy())

	l.metrics.DistributorCreated()
	l.logger.Info("distributor created",
		zap.Uint32("id", d.ID),
		zap.String("root", root.Hex()),
		zap.String("currency", currency),
		zap.String("amount", amount.Dec()))
	return d.ID, nil
}

// Charge marks the distributor as funded. A distributor is charged once.
func (l *Ledger) Charge(id uint32) error {
	d, err := l.update(id, nil, func(txn database.Txn, d *Distributor) error {
		if d.Charged {
			return errors.Wrapf(ErrCharged, "distributor %d", id)
		}
		d.Charged = true
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Info("distributor charged", zap.Uint32("id", id), zap.String("amount", d.Amount.Dec()))
	return nil
}

// Claim pays amount to account if (index, account, amount) is a leaf of the
// distributor's tree and index has not claimed yet.
func (l *Ledger) Claim(id uint32, index uint32, account ss58.AccountID, amount *uint256.Int, proof bmd.Proof) error {
	// nil until the proof was checked
	var verified *bool

	key := bitmapKey(id, index)
	_, err := l.update(id, key, func(txn database.Txn, d *Distributor) error {
		verified = nil
		word, err := readWord(txn, key)
		if err != nil {
			return err
		}
		if word&bitmapMask(index) != 0 {
			return errors.Wrapf(ErrClaimed, "distributor %d index %d", id, index)
		}

		ok, err := bmd.Verify(index, account, amount, proof, d.Root)
		if err != nil {
			return errors.Wrapf(ErrInvalidAmount, "distributor %d index %d: %v", id, index, err)
		}
		verified = &ok
		if !ok {
			return errors.Wrapf(ErrMerkleVerifyFailed, "distributor %d index %d", id, index)
		}

		if !d.Charged {
			return errors.Wrapf(ErrNotCharged, "distributor %d", id)
		}
		if amount.Gt(d.Balance()) {
			return errors.Wrapf(ErrWithdrawAmountExceed, "distributor %d: claim %s, balance %s", id, amount.Dec(), d.Balance().Dec())
		}

		d.Claimed.Add(d.Claimed, amount)
		txn.Set(key, utils.Uint32ToBytes(word|bitmapMask(index)))
		return nil
	})
	if verified != nil {
		l.metrics.ProofVerified(*verified)
	}
	if err != nil {
		return err
	}

	l.metrics.Claimed(amount.Float64())
	l.logger.Info("claimed",
		zap.Uint32("id", id),
		zap.Uint32("index", index),
		zap.String("account", account.Hex()),
		zap.String("amount", amount.Dec()))
	return nil
}

// EmergencyWithdraw takes amount out of the distributor's balance.
func (l *Ledger) EmergencyWithdraw(id uint32, amount *uint256.Int) error {
	if amount == nil {
		return errors.Wrap(ErrInvalidAmount, "nil amount")
	}
	_, err := l.update(id, nil, func(txn database.Txn, d *Distributor) error {
		if amount.Gt(d.Balance()) {
			return errors.Wrapf(ErrWithdrawAmountExceed, "distributor %d: withdraw %s, balance %s", id, amount.Dec(), d.Balance().Dec())
		}
		d.Withdrawn.Add(d.Withdrawn, amount)
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Warn("emergency withdraw", zap.Uint32("id", id), zap.String("amount", amount.Dec()))
	return nil
}

// IsClaimed reports whether index of distributor id has claimed.
func (l *Ledger) IsClaimed(id uint32, index uint32) (bool, error) {
	word, err := readWord(l.db, bitmapKey(id, index))
	if err != nil {
		return false, err
	}
	return word&bitmapMask(index) != 0, nil
}

// Get returns a copy of the distributor. It may be served from this
// Ledger's cache, so writes made through another Ledger on the same store
// show up once they evict or refresh the entry.
func (l *Ledger) Get(id uint32) (*Distributor, error) {
	if cached, ok := l.cache.Get(id); ok {
		return cached.(*Distributor).copy(), nil
	}
	d, err := readDistributor(l.db, id)
	if err != nil {
		return nil, err
	}
	l.cache.Add(id, d)
	return d.copy(), nil
}

// Count returns the number of distributors created so far.
func (l *Ledger) Count() (uint32, error) {
	return readNextID(l.db)
}

// update reads distributor id from the store, lets fn change it and writes
// it back in one store Update. extra is watched along with the record.
// The cache entry is replaced after a commit and dropped otherwise.
func (l *Ledger) update(id uint32, extra []byte, fn func(txn database.Txn, d *Distributor) error) (*Distributor, error) {
	watch := [][]byte{distributorKey(id)}
	if extra != nil {
		watch = append(watch, extra)
	}

	var d *Distributor
	err := l.db.Update(watch, func(txn database.Txn) error {
		var err error
		if d, err = readDistributor(txn, id); err != nil {
			return err
		}
		if err := fn(txn, d); err != nil {
			return err
		}
		return stage(txn, d)
	})
	if err != nil {
		l.cache.Remove(id)
		return nil, err
	}
	l.cache.Add(id, d.copy())
	return d, nil
}

func readNextID(r database.Reader) (uint32, error) {
	data, err := r.Get(nextIDKey)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return utils.BytesToUint32(data), nil
}

func readDistributor(r database.Reader, id uint32) (*Distributor, error) {
	data, err := r.Get(distributorKey(id))
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return nil, errors.Wrapf(ErrInvalidDistributorID, "%d", id)
	}
	if err != nil {
		return nil, err
	}
	return decodeDistributor(id, data)
}

func readWord(r database.Reader, key []byte) (uint32, error) {
	data, err := r.Get(key)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return utils.BytesToUint32(data), nil
}

func stage(txn database.Txn, d *Distributor) error {
	data, err := encodeDistributor(d)
	if err != nil {
		return err
	}
	txn.Set(distributorKey(d.ID), data)
	return nil
}
