package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

type RegisterNFTParams struct {
	NFTID string
	// CustomPrice puts the NFT on the scheduled track: the mint deadline is
	// fixed at registration instead of being armed by the supply trigger.
	CustomPrice *ledger.Amount
	// MintDeadline overrides the scheduled deadline. Ignored without CustomPrice.
	MintDeadline *time.Time
}

func (u *Usecase) RegisterNFT(ctx context.Context, params RegisterNFTParams, now time.Time) (*ledger.MintWindow, error) {
	window := &ledger.MintWindow{
		NFTID:             params.NFTID,
		TriggerSupply:     u.triggerSupply,
		CountdownDuration: u.countdown,
		CreatedAt:         now,
	}
	if params.CustomPrice != nil {
		if params.CustomPrice.IsZero() {
			return nil, errors.Wrap(errs.InvalidAmount, "custom mint price must be positive")
		}
		deadline := now.Add(u.countdown)
		if params.MintDeadline != nil {
			deadline = *params.MintDeadline
		}
		window.CustomPrice = params.CustomPrice
		window.ExplicitDeadline = &deadline
	}
	if err := u.ledgerDg.CreateMintWindow(ctx, window); err != nil {
		return nil, errors.Wrapf(err, "can't create mint window for nft %q", params.NFTID)
	}
	return window, nil
}

type MintResult struct {
	Window *ledger.MintWindow
	Status ledger.MintWindowStatus
	Fee    ledger.FeeSplit
}

// Mint records one mint against the NFT's window and returns the fee split
// for the mint price. The supply increment and the countdown arming are one
// atomic step under the window lock; a rejected mint changes nothing.
func (u *Usecase) Mint(ctx context.Context, nftID string, hasReferral bool, now time.Time) (*MintResult, error) {
	window, err := u.ledgerDg.UpdateMintWindow(ctx, nftID, func(w *ledger.MintWindow) error {
		return w.RecordMint(now)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't record mint for nft %q", nftID)
	}
	price := u.defaultMintPrice
	if window.CustomPrice != nil {
		price = *window.CustomPrice
	}
	fee, err := ledger.SplitFee(price, u.defaultMintPrice, hasReferral)
	if err != nil {
		return nil, errors.Wrap(err, "can't split mint fee")
	}
	return &MintResult{
		Window: window,
		Status: window.Status(now),
		Fee:    fee,
	}, nil
}

func (u *Usecase) MintWindowStatus(ctx context.Context, nftID string, now time.Time) (*ledger.MintWindow, ledger.MintWindowStatus, error) {
	window, err := u.ledgerDg.GetMintWindow(ctx, nftID)
	if err != nil {
		return nil, ledger.MintWindowStatus{}, errors.Wrapf(err, "can't get mint window for nft %q", nftID)
	}
	return window, window.Status(now), nil
}
