// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bnb-chain/merkle-distributor/database"
	"github.com/bnb-chain/merkle-distributor/database/dbtest"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func TestRedis(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() database.Store {
			_, client := newClient(t)
			return Wrap(client)
		})
	})
}

func TestRedisWithNamespace(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() database.Store {
			_, client := newClient(t)
			return Wrap(client, WithNamespace("test"))
		})
	})
}

func TestNew(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	db, err := New(&RedisConfig{Addr: mr.Addr()}, WithNamespace("ledger"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Update(nil, func(txn database.Txn) error {
		txn.Set([]byte("k"), []byte("v"))
		return nil
	}))
	stored, err := mr.Get("ledger:k")
	require.NoError(t, err)
	require.Equal(t, "v", stored)

	_, err = New(&RedisConfig{})
	require.Error(t, err)
}

func TestUpdateRetriesOnConflict(t *testing.T) {
	mr, client := newClient(t)
	db := Wrap(client, WithNamespace("ns"))
	require.NoError(t, mr.Set("ns:counter", "1"))

	runs := 0
	err := db.Update([][]byte{[]byte("counter")}, func(txn database.Txn) error {
		runs++
		value, err := txn.Get([]byte("counter"))
		if err != nil {
			return err
		}
		if runs == 1 {
			// another writer lands between WATCH and EXEC
			require.NoError(t, mr.Set("ns:counter", "5"))
		}
		txn.Set([]byte("counter"), append(value, '0'))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, runs)

	stored, err := mr.Get("ns:counter")
	require.NoError(t, err)
	require.Equal(t, "50", stored)
}

func TestUpdateGivesUp(t *testing.T) {
	mr, client := newClient(t)
	db := Wrap(client, WithTxnAttempts(3))

	runs := 0
	err := db.Update([][]byte{[]byte("k")}, func(txn database.Txn) error {
		runs++
		require.NoError(t, mr.Set("k", "theirs"))
		txn.Set([]byte("k"), []byte("ours"))
		return nil
	})
	require.ErrorIs(t, err, database.ErrTxnConflict)
	require.Equal(t, 3, runs)

	stored, err := mr.Get("k")
	require.NoError(t, err)
	require.Equal(t, "theirs", stored)
}

func TestLogHook(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, client := newClient(t)
	db := Wrap(client, WithHooks(NewLogHook(zap.New(core))))

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(t, err, database.ErrDatabaseNotFound)
	require.NoError(t, db.Update([][]byte{[]byte("k")}, func(txn database.Txn) error {
		txn.Set([]byte("k"), []byte("v"))
		return nil
	}))

	entries := logs.FilterMessage("redis").AllUntimed()
	require.NotEmpty(t, entries)
	require.Equal(t, "get", entries[0].ContextMap()["cmd"])
	_, hasErr := entries[0].ContextMap()["error"]
	require.False(t, hasErr)
}
