package memory

import (
	"sync"

	"github.com/bnb-chain/merkle-distributor/database"
	"github.com/bnb-chain/merkle-distributor/utils"
)

var _ database.Store = (*MemoryDB)(nil)

// MemoryDB is a key-value store kept in a map. It is the default ledger
// backend and the one used by tests.
type MemoryDB struct {
	lock sync.RWMutex
	db   map[string][]byte
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		db: make(map[string][]byte),
	}
}

func (db *MemoryDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.get(key)
}

// get expects db.lock to be held.
func (db *MemoryDB) get(key []byte) ([]byte, error) {
	if db.db == nil {
		return nil, database.ErrDatabaseClosed
	}
	value, ok := db.db[string(key)]
	if !ok {
		return nil, database.ErrDatabaseNotFound
	}
	return utils.CopyBytes(value), nil
}

// Update holds the write lock for the whole callback, so updates never
// interleave and readers never see half of one.
func (db *MemoryDB) Update(_ [][]byte, fn func(txn database.Txn) error) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.db == nil {
		return database.ErrDatabaseClosed
	}
	txn := database.NewStaged(db.get)
	if err := fn(txn); err != nil {
		return err
	}
	txn.Each(func(key, value []byte) {
		db.db[string(key)] = value
	})
	return nil
}

// Len returns the number of stored keys.
func (db *MemoryDB) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.db)
}

func (db *MemoryDB) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db = nil
	return nil
}
