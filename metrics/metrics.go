// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package metrics

import "time"

type Metrics interface {
	// The number of leaves of the last built tree
	TreeLeaves(int)
	// The depth of the last built tree
	TreeDepth(int)
	// Time spent building a tree
	BuildDuration(time.Duration)
	// The number of proofs generated
	ProofGenerated()
	// The number of verifications, split by outcome
	ProofVerified(ok bool)
	// The number of distributors created
	DistributorCreated()
	// The number of successful claims
	Claimed(amount float64)
}

// Nop discards every observation.
type Nop struct{}

var _ Metrics = Nop{}

func (Nop) TreeLeaves(int)              {}
func (Nop) TreeDepth(int)               {}
func (Nop) BuildDuration(time.Duration) {}
func (Nop) ProofGenerated()             {}
func (Nop) ProofVerified(bool)          {}
func (Nop) DistributorCreated()         {}
func (Nop) Claimed(float64)             {}
