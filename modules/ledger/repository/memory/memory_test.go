package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1700000000, 0).UTC()

func newTestListing(id string) *ledger.Listing {
	return &ledger.Listing{
		ID:       id,
		NFTID:    "nft-1",
		Seller:   ledger.Seller{Address: "0xseller", Username: "seller"},
		Price:    ledger.NewAmount(500),
		Quantity: 1,
		Status:   ledger.ListingStatusActive,
		ListedAt: testNow,
	}
}

func TestUpdateMintWindowConcurrentMints(t *testing.T) {
	ctx := context.Background()
	r := New(Config{EarlyBirdCap: 5})
	require.NoError(t, r.CreateMintWindow(ctx, &ledger.MintWindow{
		NFTID:             "nft-1",
		TriggerSupply:     1000,
		CountdownDuration: 48 * time.Hour,
		CreatedAt:         testNow,
	}))

	const mints = 64
	var wg sync.WaitGroup
	for i := 0; i < mints; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.UpdateMintWindow(ctx, "nft-1", func(w *ledger.MintWindow) error {
				return w.RecordMint(testNow)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	window, err := r.GetMintWindow(ctx, "nft-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(mints), window.MintedSupply)
}

func TestUpdateListingConcurrentDistinctKeys(t *testing.T) {
	ctx := context.Background()
	r := New(Config{EarlyBirdCap: 5})

	const count = 32
	for i := 0; i < count; i++ {
		require.NoError(t, r.CreateListing(ctx, newTestListing(fmt.Sprintf("listing-%d", i))))
	}

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := r.UpdateListing(ctx, id, func(l *ledger.Listing) error {
				soldAt := testNow
				l.Status = ledger.ListingStatusSold
				l.SoldAt = &soldAt
				return nil
			})
			assert.NoError(t, err)
		}(fmt.Sprintf("listing-%d", i))
	}
	wg.Wait()

	for i := 0; i < count; i++ {
		listing, err := r.GetListing(ctx, fmt.Sprintf("listing-%d", i))
		require.NoError(t, err)
		assert.Equal(t, ledger.ListingStatusSold, listing.Status)
	}
}

func TestUpdateListingFailureLeavesValueUntouched(t *testing.T) {
	ctx := context.Background()
	r := New(Config{EarlyBirdCap: 5})
	require.NoError(t, r.CreateListing(ctx, newTestListing("listing-1")))

	errRejected := errors.New("rejected")
	_, err := r.UpdateListing(ctx, "listing-1", func(l *ledger.Listing) error {
		return errRejected
	})
	require.ErrorIs(t, err, errRejected)

	listing, err := r.GetListing(ctx, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, ledger.ListingStatusActive, listing.Status)
	assert.Nil(t, listing.SoldAt)
}

func TestGetListingReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := New(Config{EarlyBirdCap: 5})
	require.NoError(t, r.CreateListing(ctx, newTestListing("listing-1")))

	listing, err := r.GetListing(ctx, "listing-1")
	require.NoError(t, err)
	listing.Status = ledger.ListingStatusCancelled

	again, err := r.GetListing(ctx, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, ledger.ListingStatusActive, again.Status)
}

func TestCreateMintWindowDuplicate(t *testing.T) {
	ctx := context.Background()
	r := New(Config{EarlyBirdCap: 5})
	window := &ledger.MintWindow{NFTID: "nft-1", TriggerSupply: 1000, CreatedAt: testNow}

	require.NoError(t, r.CreateMintWindow(ctx, window))
	err := r.CreateMintWindow(ctx, window)
	require.ErrorIs(t, err, errs.Duplicate)
}

func TestUpdateMissingKeys(t *testing.T) {
	ctx := context.Background()
	r := New(Config{EarlyBirdCap: 5})

	_, err := r.UpdateMintWindow(ctx, "missing", func(*ledger.MintWindow) error { return nil })
	require.ErrorIs(t, err, errs.NotFound)

	_, err = r.UpdateListing(ctx, "missing", func(*ledger.Listing) error { return nil })
	require.ErrorIs(t, err, errs.ListingNotFound)
}
