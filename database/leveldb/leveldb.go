package leveldb

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bnb-chain/merkle-distributor/database"
)

var _ database.Store = (*Database)(nil)

const (
	// minCache is the minimum amount of memory in megabytes to allocate to leveldb
	// read and write caching, split half and half.
	minCache = 16

	// minHandles is the minimum number of files handles to allocate to the open
	// database files.
	minHandles = 16
)

// Database is a namespaced view of a LevelDB. LevelDB locks its directory to
// one process, so serializing Update within the handle is enough to make it
// atomic.
type Database struct {
	db        *leveldb.DB
	namespace []byte

	updateMu sync.Mutex
}

// New opens a LevelDB at file, recovering it when the manifest is corrupted.
// cache is in megabytes.
func New(file string, namespace string, cache int, handles int, readonly bool) (*Database, error) {
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}
	options := &opt.Options{
		Filter:                 filter.NewBloomFilter(10),
		DisableSeeksCompaction: true,
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // two of these are used internally
		ReadOnly:               readonly,
	}

	db, err := leveldb.OpenFile(file, options)
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "leveldb: open %s", file)
	}
	return Wrap(db, namespace), nil
}

// Wrap uses an already opened LevelDB. Keys are written as namespace:key
// when namespace is not empty.
func Wrap(db *leveldb.DB, namespace string) *Database {
	return &Database{
		db:        db,
		namespace: []byte(namespace),
	}
}

func (db *Database) key(key []byte) []byte {
	if len(db.namespace) == 0 {
		return key
	}
	k := make([]byte, 0, len(db.namespace)+1+len(key))
	k = append(k, db.namespace...)
	k = append(k, ':')
	return append(k, key...)
}

func (db *Database) Get(key []byte) ([]byte, error) {
	value, err := db.db.Get(db.key(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, database.ErrDatabaseNotFound
	}
	if errors.Is(err, leveldb.ErrClosed) {
		return nil, database.ErrDatabaseClosed
	}
	return value, err
}

// Update commits the staged writes as one leveldb.Batch.
func (db *Database) Update(_ [][]byte, fn func(txn database.Txn) error) error {
	db.updateMu.Lock()
	defer db.updateMu.Unlock()

	txn := database.NewStaged(db.Get)
	if err := fn(txn); err != nil {
		return err
	}
	if txn.Len() == 0 {
		return nil
	}
	batch := new(leveldb.Batch)
	txn.Each(func(key, value []byte) {
		batch.Put(db.key(key), value)
	})
	if err := db.db.Write(batch, nil); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return database.ErrDatabaseClosed
		}
		return err
	}
	return nil
}

// Close flushes pending data and releases the directory lock.
func (db *Database) Close() error {
	return db.db.Close()
}
