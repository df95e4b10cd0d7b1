package genesis

import "github.com/pkg/errors"

var (
	// ErrInvalidBalance is returned for a balance entry that is not an
	// [address, amount] pair or whose amount is negative or wider than 128 bits.
	ErrInvalidBalance = errors.New("invalid balance entry")

	ErrDuplicateAddress = errors.New("duplicate address")
	ErrTreeMismatch     = errors.New("tree does not commit to the records")
)
