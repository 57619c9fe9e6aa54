package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

// QuoteFee splits total across the fee recipients without touching any state.
// A nil total quotes the platform default mint price.
func (u *Usecase) QuoteFee(_ context.Context, total *ledger.Amount, hasReferral bool) (ledger.FeeSplit, error) {
	price := u.defaultMintPrice
	if total != nil {
		price = *total
	}
	split, err := ledger.SplitFee(price, u.defaultMintPrice, hasReferral)
	if err != nil {
		return ledger.FeeSplit{}, errors.Wrap(err, "can't split fee")
	}
	return split, nil
}
