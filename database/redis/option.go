// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package redis

import (
	"github.com/go-redis/redis/v8"
)

// An Option configures a *Database
type Option func(*Database)

func WithHooks(hooks ...redis.Hook) Option {
	return func(db *Database) {
		for _, hook := range hooks {
			db.client.AddHook(hook)
		}
	}
}

// WithNamespace prefixes every key with namespace and a colon.
func WithNamespace(namespace string) Option {
	return func(db *Database) {
		db.namespace = namespace
	}
}

// WithTxnAttempts bounds how often Update reruns after losing a WATCH race.
func WithTxnAttempts(n int) Option {
	return func(db *Database) {
		if n > 0 {
			db.attempts = n
		}
	}
}
