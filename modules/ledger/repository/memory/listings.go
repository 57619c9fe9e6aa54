package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

func (r *Repository) CreateListing(_ context.Context, listing *ledger.Listing) error {
	if !r.listings.create(listing.ID, cloneListing(listing)) {
		return errors.Wrapf(errs.Duplicate, "listing %q already exists", listing.ID)
	}
	r.listingsByNFTMu.Lock()
	r.listingsByNFT[listing.NFTID] = append(r.listingsByNFT[listing.NFTID], listing.ID)
	r.listingsByNFTMu.Unlock()
	return nil
}

func (r *Repository) GetListing(_ context.Context, listingID string) (*ledger.Listing, error) {
	entry, ok := r.listings.get(listingID)
	if !ok {
		return nil, errors.Wrapf(errs.ListingNotFound, "listing %q", listingID)
	}
	return update(entry, func(l *ledger.Listing) (*ledger.Listing, error) {
		return cloneListing(l), nil
	})
}

func (r *Repository) GetListingsByNFT(_ context.Context, nftID string) ([]*ledger.Listing, error) {
	r.listingsByNFTMu.RLock()
	ids := make([]string, len(r.listingsByNFT[nftID]))
	copy(ids, r.listingsByNFT[nftID])
	r.listingsByNFTMu.RUnlock()

	listings := make([]*ledger.Listing, 0, len(ids))
	for _, id := range ids {
		entry, ok := r.listings.get(id)
		if !ok {
			continue
		}
		listing, _ := update(entry, func(l *ledger.Listing) (*ledger.Listing, error) {
			return cloneListing(l), nil
		})
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r *Repository) UpdateListing(_ context.Context, listingID string, fn func(*ledger.Listing) error) (*ledger.Listing, error) {
	entry, ok := r.listings.get(listingID)
	if !ok {
		return nil, errors.Wrapf(errs.ListingNotFound, "listing %q", listingID)
	}
	return update(entry, func(l *ledger.Listing) (*ledger.Listing, error) {
		if err := fn(l); err != nil {
			return nil, err
		}
		return cloneListing(l), nil
	})
}
