package bmd

import (
	"github.com/panjf2000/ants/v2"

	"github.com/bnb-chain/merkle-distributor/metrics"
)

const defaultParallelThreshold = 4096

type treeConfig struct {
	hasher            *Hasher
	pool              *ants.Pool
	workers           int
	parallelThreshold int
	metrics           metrics.Metrics
}

func defaultTreeConfig() *treeConfig {
	return &treeConfig{
		hasher:            defaultHasher,
		parallelThreshold: defaultParallelThreshold,
		metrics:           metrics.Nop{},
	}
}

// Option is a function that configures tree construction.
type Option func(*treeConfig)

// WithHasher replaces the Keccak-256 hasher. Trees built with a different
// hasher only verify with that hasher.
func WithHasher(hasher *Hasher) Option {
	return func(c *treeConfig) {
		if hasher != nil {
			c.hasher = hasher
		}
	}
}

// WithWorkerPool hashes record leaves on an existing pool. The pool is not
// released by the tree.
func WithWorkerPool(pool *ants.Pool) Option {
	return func(c *treeConfig) {
		c.pool = pool
	}
}

// Workers hashes record leaves on a pool of n goroutines created for the
// duration of one build.
func Workers(n int) Option {
	return func(c *treeConfig) {
		c.workers = n
	}
}

// ParallelThreshold sets the minimum number of records hashed in parallel.
func ParallelThreshold(n int) Option {
	return func(c *treeConfig) {
		c.parallelThreshold = n
	}
}

func EnableMetrics(m metrics.Metrics) Option {
	return func(c *treeConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}
