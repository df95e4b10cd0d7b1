// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnb-chain/merkle-distributor/metrics"
)

var _ metrics.Metrics = (*Collector)(nil)

// NewCollector creates the distributor metrics and registers them on reg.
// A nil reg registers on the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	treeLeaves := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "merkle_tree_leaves",
		Help: "The number of leaves of the last built tree",
	})
	treeDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "merkle_tree_depth",
		Help: "The depth of the last built tree",
	})
	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "merkle_tree_build_seconds",
		Help:    "Time spent building a tree",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
	proofs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "merkle_proofs_generated_total",
		Help: "The number of proofs generated",
	})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "merkle_proofs_verified_total",
		Help: "The number of proof verifications by outcome",
	}, []string{"result"})
	distributors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "merkle_distributors_created_total",
		Help: "The number of distributors created",
	})
	claims := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "merkle_claims_total",
		Help: "The number of successful claims",
	})
	claimedAmount := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "merkle_claimed_amount_total",
		Help: "The amount paid out by successful claims",
	})
	reg.MustRegister(
		treeLeaves,
		treeDepth,
		buildDuration,
		proofs,
		verifications,
		distributors,
		claims,
		claimedAmount)

	return &Collector{
		treeLeaves:    treeLeaves,
		treeDepth:     treeDepth,
		buildDuration: buildDuration,
		proofs:        proofs,
		verifications: verifications,
		distributors:  distributors,
		claims:        claims,
		claimedAmount: claimedAmount,
	}
}

type Collector struct {
	treeLeaves    prometheus.Gauge
	treeDepth     prometheus.Gauge
	buildDuration prometheus.Histogram
	proofs        prometheus.Counter
	verifications *prometheus.CounterVec
	distributors  prometheus.Counter
	claims        prometheus.Counter
	claimedAmount prometheus.Counter
}

func (c *Collector) TreeLeaves(n int) {
	c.treeLeaves.Set(float64(n))
}

func (c *Collector) TreeDepth(depth int) {
	c.treeDepth.Set(float64(depth))
}

func (c *Collector) BuildDuration(d time.Duration) {
	c.buildDuration.Observe(d.Seconds())
}

func (c *Collector) ProofGenerated() {
	c.proofs.Inc()
}

func (c *Collector) ProofVerified(ok bool) {
	result := "invalid"
	if ok {
		result = "valid"
	}
	c.verifications.WithLabelValues(result).Inc()
}

func (c *Collector) DistributorCreated() {
	c.distributors.Inc()
}

func (c *Collector) Claimed(amount float64) {
	c.claims.Inc()
	c.claimedAmount.Add(amount)
}
