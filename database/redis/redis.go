// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/bnb-chain/merkle-distributor/database"
)

const defaultTxnAttempts = 16

var _ database.Store = (*Database)(nil)

// Database keeps ledger state in redis. Update is optimistic: the watched
// keys are WATCHed, read, and the writes go out in MULTI/EXEC, so several
// processes may share one namespace.
type Database struct {
	client    RedisClient
	namespace string
	// hashTag keeps a transaction's keys in one cluster slot.
	hashTag  bool
	attempts int
}

// New connects to redis and pings it before returning the store.
func New(config *RedisConfig, opts ...Option) (*Database, error) {
	if config == nil || (config.Addr == "" && len(config.ClusterAddr) == 0) {
		return nil, errors.New("redis: no address configured")
	}
	var client RedisClient
	if len(config.ClusterAddr) > 0 {
		// cluster mode
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:              config.ClusterAddr,
			PoolSize:           config.PoolSize,
			Username:           config.Username,
			Password:           config.Password,
			MaxRedirects:       config.MaxRedirects,
			ReadOnly:           config.ReadOnly,
			RouteByLatency:     config.RouteByLatency,
			RouteRandomly:      config.RouteRandomly,
			MaxRetries:         config.MaxRetries,
			MinRetryBackoff:    config.MinRetryBackoff,
			MaxRetryBackoff:    config.MaxRetryBackoff,
			DialTimeout:        config.DialTimeout,
			ReadTimeout:        config.ReadTimeout,
			WriteTimeout:       config.WriteTimeout,
			MinIdleConns:       config.MinIdleConns,
			MaxConnAge:         config.MaxConnAge,
			PoolFIFO:           config.PoolFIFO,
			PoolTimeout:        config.PoolTimeout,
			IdleTimeout:        config.IdleTimeout,
			IdleCheckFrequency: config.IdleCheckFrequency,
		})
	} else {
		// single node mode
		client = redis.NewClient(&redis.Options{
			Addr:               config.Addr,
			PoolSize:           config.PoolSize,
			Username:           config.Username,
			Password:           config.Password,
			MaxRetries:         config.MaxRetries,
			MinRetryBackoff:    config.MinRetryBackoff,
			MaxRetryBackoff:    config.MaxRetryBackoff,
			DialTimeout:        config.DialTimeout,
			ReadTimeout:        config.ReadTimeout,
			WriteTimeout:       config.WriteTimeout,
			MinIdleConns:       config.MinIdleConns,
			MaxConnAge:         config.MaxConnAge,
			PoolFIFO:           config.PoolFIFO,
			PoolTimeout:        config.PoolTimeout,
			IdleTimeout:        config.IdleTimeout,
			IdleCheckFrequency: config.IdleCheckFrequency,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), config.dialTimeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "redis: ping")
	}
	db := Wrap(client, opts...)
	db.hashTag = len(config.ClusterAddr) > 0
	return db, nil
}

// Wrap uses an existing client.
func Wrap(client RedisClient, opts ...Option) *Database {
	db := &Database{
		client:   client,
		attempts: defaultTxnAttempts,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *Database) key(key []byte) string {
	switch {
	case db.namespace == "":
		return string(key)
	case db.hashTag:
		return "{" + db.namespace + "}:" + string(key)
	default:
		return db.namespace + ":" + string(key)
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func get(ctx context.Context, c getter, key string) ([]byte, error) {
	value, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, database.ErrDatabaseNotFound
	}
	if errors.Is(err, redis.ErrClosed) {
		return nil, database.ErrDatabaseClosed
	}
	return value, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	return get(context.Background(), db.client, db.key(key))
}

// Update reads through the WATCHing connection and commits with
// MULTI/EXEC. When a watched key changed in between, EXEC aborts and fn
// runs again on fresh values.
func (db *Database) Update(watch [][]byte, fn func(txn database.Txn) error) error {
	ctx := context.Background()
	keys := make([]string, len(watch))
	for i, k := range watch {
		keys[i] = db.key(k)
	}

	txf := func(tx *redis.Tx) error {
		txn := database.NewStaged(func(key []byte) ([]byte, error) {
			return get(ctx, tx, db.key(key))
		})
		if err := fn(txn); err != nil {
			return err
		}
		if txn.Len() == 0 {
			return nil
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			txn.Each(func(key, value []byte) {
				pipe.Set(ctx, db.key(key), value, 0)
			})
			return nil
		})
		return err
	}

	for attempt := 0; attempt < db.attempts; attempt++ {
		err := db.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return errors.Wrapf(database.ErrTxnConflict, "redis: %d attempts on %v", db.attempts, keys)
}

func (db *Database) Close() error {
	return db.client.Close()
}
