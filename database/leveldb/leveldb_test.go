package leveldb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bnb-chain/merkle-distributor/database"
	"github.com/bnb-chain/merkle-distributor/database/dbtest"
)

func newMemLevelDB(t *testing.T) *leveldb.DB {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func set(t *testing.T, db database.Store, key, value string) {
	require.NoError(t, db.Update(nil, func(txn database.Txn) error {
		txn.Set([]byte(key), []byte(value))
		return nil
	}))
}

func TestLevelDB(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() database.Store {
			return Wrap(newMemLevelDB(t), "")
		})
	})
}

func TestLevelDBWithNamespace(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() database.Store {
			return Wrap(newMemLevelDB(t), "test")
		})
	})
}

func TestNamespacesAreIsolated(t *testing.T) {
	raw := newMemLevelDB(t)
	defer raw.Close()

	a := Wrap(raw, "a")
	b := Wrap(raw, "b")

	set(t, a, "k", "v")
	_, err := b.Get([]byte("k"))
	require.ErrorIs(t, err, database.ErrDatabaseNotFound)

	stored, err := raw.Get([]byte("a:k"), nil)
	require.NoError(t, err)
	require.Equal(t, []byte("v"), stored)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	db, err := New(dir, "ledger", 0, 0, false)
	require.NoError(t, err)
	set(t, db, "k", "v")
	require.NoError(t, db.Close())

	db, err = New(dir, "ledger", 0, 0, true)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	// read-only handles refuse writes
	require.Error(t, db.Update(nil, func(txn database.Txn) error {
		txn.Set([]byte("k"), []byte("w"))
		return nil
	}))
}
