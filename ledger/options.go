// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package ledger

import (
	"go.uber.org/zap"

	"github.com/bnb-chain/merkle-distributor/metrics"
)

const (
	// MaxDescriptionLength bounds the description of a distributor in bytes.
	MaxDescriptionLength = 128

	defaultCacheSize = 256
)

// Option is a function that configures a Ledger.
type Option func(*Ledger)

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(m metrics.Metrics) Option {
	return func(l *Ledger) {
		if m != nil {
			l.metrics = m
		}
	}
}

// CacheSize sets how many distributor records are kept decoded in memory.
func CacheSize(size int) Option {
	return func(l *Ledger) {
		if size > 0 {
			l.cacheSize = size
		}
	}
}
