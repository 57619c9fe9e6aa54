package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary amount in the smallest currency unit
// (wei-equivalent integer). Amounts are serialized as decimal strings to
// avoid floating-point precision loss.
type Amount = uint128.Uint128

// NewAmount returns an Amount from a uint64 value in minor units.
func NewAmount(v uint64) Amount {
	return uint128.From64(v)
}

// ParseAmount parses a base-10 integer string in minor units.
// Returns errs.InvalidAmount if the string is not a non-negative integer.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidAmount, "can't parse amount %q", s)
	}
	if d.IsNegative() || !d.IsInteger() {
		return uint128.Zero, errors.Wrapf(errs.InvalidAmount, "amount %q must be a non-negative integer in minor units", s)
	}
	amount, err := uint128.FromBig(d.BigInt())
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "amount %q exceeds 128 bits", s)
	}
	return amount, nil
}
