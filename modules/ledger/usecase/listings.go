package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
	"github.com/openmint/platform-ledger/pkg/reportingclient"
	"github.com/samber/lo"
)

type CreateListingParams struct {
	NFTID     string
	Seller    ledger.Seller
	Price     ledger.Amount
	Quantity  uint64
	ExpiresAt *time.Time
}

func (u *Usecase) CreateListing(ctx context.Context, params CreateListingParams, now time.Time) (*ledger.Listing, error) {
	if params.Price.IsZero() {
		return nil, errors.Wrap(errs.InvalidPrice, "listing price must be positive")
	}
	if params.Quantity == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "listing quantity must be at least 1")
	}
	listing := &ledger.Listing{
		ID:        uuid.NewString(),
		NFTID:     params.NFTID,
		Seller:    params.Seller,
		Price:     params.Price,
		Quantity:  params.Quantity,
		Status:    ledger.ListingStatusActive,
		ListedAt:  now,
		ExpiresAt: params.ExpiresAt,
	}
	if err := u.ledgerDg.CreateListing(ctx, listing); err != nil {
		return nil, errors.Wrapf(err, "can't create listing for nft %q", params.NFTID)
	}
	return listing, nil
}

type BuyResult struct {
	Listing *ledger.Listing
	// TxRef identifies the settlement of this purchase.
	TxRef string
}

// BuyListing settles a purchase. The active check and the transition to sold
// happen under the listing lock, so concurrent buyers for the same listing
// resolve to exactly one sale; losers observe errs.ListingNotFound.
func (u *Usecase) BuyListing(ctx context.Context, listingID, buyer string, now time.Time) (*BuyResult, error) {
	listing, err := u.ledgerDg.UpdateListing(ctx, listingID, func(l *ledger.Listing) error {
		if !l.ActiveAt(now) {
			return errors.Wrapf(errs.ListingNotFound, "listing %q is no longer active", listingID)
		}
		soldAt := now
		l.Status = ledger.ListingStatusSold
		l.SoldAt = &soldAt
		l.Buyer = buyer
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't buy listing %q", listingID)
	}
	txRef := uuid.NewString()
	u.submitSaleReport(ctx, listing, txRef)
	return &BuyResult{Listing: listing, TxRef: txRef}, nil
}

func (u *Usecase) CancelListing(ctx context.Context, listingID, requester string, now time.Time) (*ledger.Listing, error) {
	listing, err := u.ledgerDg.UpdateListing(ctx, listingID, func(l *ledger.Listing) error {
		if l.Seller.Address != requester {
			return errors.Wrapf(errs.Unauthorized, "only the seller can cancel listing %q", listingID)
		}
		if !l.ActiveAt(now) {
			return errors.Wrapf(errs.ListingNotFound, "listing %q is no longer active", listingID)
		}
		l.Status = ledger.ListingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't cancel listing %q", listingID)
	}
	return listing, nil
}

type ListingBook struct {
	// ActiveListings is sorted by price ascending.
	ActiveListings []*ledger.Listing
	// FloorPrice is the cheapest active price; nil when nothing is active.
	FloorPrice *ledger.Amount
	// TotalVolume is the sum of sale prices over all sold listings of the NFT.
	TotalVolume      ledger.Amount
	TotalActiveCount int
}

// Listings returns the order book for the NFT at now. Expiry is evaluated
// lazily against now, so expired listings drop out of the floor and the
// active set without any background sweep.
func (u *Usecase) Listings(ctx context.Context, nftID string, now time.Time) (*ListingBook, error) {
	all, err := u.ledgerDg.GetListingsByNFT(ctx, nftID)
	if err != nil {
		return nil, errors.Wrapf(err, "can't get listings for nft %q", nftID)
	}
	active := lo.Filter(all, func(l *ledger.Listing, _ int) bool {
		return l.ActiveAt(now)
	})
	slices.SortFunc(active, func(a, b *ledger.Listing) int {
		return a.Price.Cmp(b.Price)
	})
	volume := ledger.Amount{}
	for _, l := range all {
		if l.Status == ledger.ListingStatusSold {
			volume = volume.Add(l.Price)
		}
	}
	book := &ListingBook{
		ActiveListings:   active,
		TotalVolume:      volume,
		TotalActiveCount: len(active),
	}
	if len(active) > 0 {
		book.FloorPrice = lo.ToPtr(active[0].Price)
	}
	return book, nil
}

func (u *Usecase) submitSaleReport(ctx context.Context, listing *ledger.Listing, txRef string) {
	if u.reportingClient == nil {
		return
	}
	payload := reportingclient.SubmitSaleReportPayload{
		TxRef:     txRef,
		ListingID: listing.ID,
		NFTID:     listing.NFTID,
		Seller:    listing.Seller.Address,
		Buyer:     listing.Buyer,
		Price:     listing.Price.String(),
		Quantity:  listing.Quantity,
	}
	if err := u.reportingClient.SubmitSaleReport(ctx, payload); err != nil {
		logger.WarnContext(ctx, "failed to submit sale report", slogx.Error(err), slogx.String("listingId", listing.ID))
	}
}
