package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/openmint/platform-ledger/common/errs"
)

// Fee policy shares in percent. The default-price policy splits a mint fee
// between creator, first minter, referral and platform; the referral share
// folds into the platform share when no referral is present. The custom-price
// policy pays the creator almost everything and carries no referral economics.
const (
	DefaultCreatorPercent     = 50
	DefaultFirstMinterPercent = 10
	DefaultReferralPercent    = 20

	CustomCreatorPercent = 95
)

// DefaultMintPrice is the platform-wide default mint price in minor units,
// used when the deployment config does not set one.
var DefaultMintPrice = NewAmount(111000)

// FeeSplit is the result of splitting a mint fee. All shares are exact minor
// unit amounts. Invariant: Creator + FirstMinter + Referral + Platform == Total.
type FeeSplit struct {
	Total       Amount
	Creator     Amount
	FirstMinter Amount
	Referral    Amount
	Platform    Amount
}

// SplitFee splits total into fee shares. Shares are computed with integer
// arithmetic; the division remainder always rounds into the platform share so
// the sum invariant holds for every input.
//
// The default-price policy applies when total equals defaultPrice; any other
// total is a creator-set custom price and pays creator 95%, platform 5%.
// Returns errs.InvalidAmount if total is zero.
func SplitFee(total Amount, defaultPrice Amount, hasReferral bool) (FeeSplit, error) {
	if total.IsZero() {
		return FeeSplit{}, errors.Wrap(errs.InvalidAmount, "fee total must be positive")
	}

	if !total.Equals(defaultPrice) {
		creator, err := percentOf(total, CustomCreatorPercent)
		if err != nil {
			return FeeSplit{}, errors.WithStack(err)
		}
		return FeeSplit{
			Total:    total,
			Creator:  creator,
			Platform: total.Sub(creator),
		}, nil
	}

	creator, err := percentOf(total, DefaultCreatorPercent)
	if err != nil {
		return FeeSplit{}, errors.WithStack(err)
	}
	firstMinter, err := percentOf(total, DefaultFirstMinterPercent)
	if err != nil {
		return FeeSplit{}, errors.WithStack(err)
	}
	referral := uint128.Zero
	if hasReferral {
		referral, err = percentOf(total, DefaultReferralPercent)
		if err != nil {
			return FeeSplit{}, errors.WithStack(err)
		}
	}
	platform := total.Sub(creator).Sub(firstMinter).Sub(referral)
	return FeeSplit{
		Total:       total,
		Creator:     creator,
		FirstMinter: firstMinter,
		Referral:    referral,
		Platform:    platform,
	}, nil
}

func percentOf(total Amount, percent uint64) (Amount, error) {
	v, overflow := total.MulOverflow(uint128.From64(percent))
	if overflow {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "%d%% of %s overflows", percent, total)
	}
	return v.Div64(100), nil
}
