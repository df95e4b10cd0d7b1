package ss58

import "github.com/pkg/errors"

var (
	// ErrInvalidAddress is returned when an address does not decode to a
	// public key of the expected length, prefix and checksum.
	ErrInvalidAddress = errors.New("invalid address")

	ErrUnknownFormat = errors.New("unknown address format")
)
