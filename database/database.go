// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

// Package database is the key-value storage used by the claim ledger.
package database

type (
	// Reader looks up single keys. A missing key returns ErrDatabaseNotFound.
	Reader interface {
		Get(key []byte) ([]byte, error)
	}

	// Txn is the view handed to an Update callback. Get sees the writes
	// staged by Set earlier in the same callback.
	Txn interface {
		Reader
		Set(key []byte, value []byte)
	}

	Store interface {
		Reader

		// Update runs fn and applies its writes atomically. watch names the
		// keys fn reads; a store shared between processes reruns fn when one
		// of them changed before the commit. An error from fn discards the
		// staged writes and is returned as is.
		Update(watch [][]byte, fn func(txn Txn) error) error

		Close() error
	}
)
