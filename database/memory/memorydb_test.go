package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/merkle-distributor/database"
	"github.com/bnb-chain/merkle-distributor/database/dbtest"
)

func TestMemoryDB(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() database.Store {
			return NewMemoryDB()
		})
	})
}

func TestMemoryDBClosed(t *testing.T) {
	db := NewMemoryDB()
	require.NoError(t, db.Update(nil, func(txn database.Txn) error {
		txn.Set([]byte("k"), []byte("v"))
		return nil
	}))
	require.Equal(t, 1, db.Len())
	require.NoError(t, db.Close())

	_, err := db.Get([]byte("k"))
	require.ErrorIs(t, err, database.ErrDatabaseClosed)
	err = db.Update(nil, func(database.Txn) error { return nil })
	require.ErrorIs(t, err, database.ErrDatabaseClosed)
}
