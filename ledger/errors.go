// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package ledger

import "github.com/pkg/errors"

var (
	ErrBadDescription       = errors.New("description exceeds the length limit")
	ErrInvalidDistributorID = errors.New("invalid merkle distributor id")
	ErrMerkleVerifyFailed   = errors.New("merkle proof verification failed")
	ErrClaimed              = errors.New("index already claimed")
	ErrCharged              = errors.New("distributor already charged")
	ErrNotCharged           = errors.New("distributor not charged")
	ErrWithdrawAmountExceed = errors.New("amount exceeds the distributor balance")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrCorruptedDistributor = errors.New("corrupted distributor record")
)
