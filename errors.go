// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

package bmd

import (
	"github.com/pkg/errors"

	"github.com/bnb-chain/merkle-distributor/ss58"
)

var (
	ErrInvalidAddress = ss58.ErrInvalidAddress

	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyInput = errors.New("no leaves to build a tree from")

	ErrIndexOutOfRange = errors.New("leaf position out of range")
)
