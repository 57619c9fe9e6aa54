package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListingRejectsZeroPrice(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	_, err := u.CreateListing(ctx, CreateListingParams{
		NFTID:    "nft-1",
		Seller:   ledger.Seller{Address: "0xseller"},
		Price:    ledger.Amount{},
		Quantity: 1,
	}, testNow)
	require.ErrorIs(t, err, errs.InvalidPrice)
}

func TestBuyListingConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	listing, err := u.CreateListing(ctx, CreateListingParams{
		NFTID:    "nft-1",
		Seller:   ledger.Seller{Address: "0xseller"},
		Price:    ledger.NewAmount(500),
		Quantity: 1,
	}, testNow)
	require.NoError(t, err)

	const buyers = 16
	var wg sync.WaitGroup
	var wins atomic.Int64
	losses := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := u.BuyListing(ctx, listing.ID, fmt.Sprintf("0xbuyer%d", i), testNow)
			if err != nil {
				losses <- err
				return
			}
			wins.Add(1)
			assert.NotEmpty(t, result.TxRef)
		}(i)
	}
	wg.Wait()
	close(losses)

	assert.EqualValues(t, 1, wins.Load())
	lossCount := 0
	for err := range losses {
		lossCount++
		assert.ErrorIs(t, err, errs.ListingNotFound)
	}
	assert.Equal(t, buyers-1, lossCount)

	final, err := u.ledgerDg.GetListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.ListingStatusSold, final.Status)
	require.NotNil(t, final.SoldAt)
}

func TestBuyListingRetryAfterSoldFails(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	listing, err := u.CreateListing(ctx, CreateListingParams{
		NFTID:    "nft-1",
		Seller:   ledger.Seller{Address: "0xseller"},
		Price:    ledger.NewAmount(500),
		Quantity: 1,
	}, testNow)
	require.NoError(t, err)

	_, err = u.BuyListing(ctx, listing.ID, "0xbuyer", testNow)
	require.NoError(t, err)

	// retry must fail loudly, never double-sell
	_, err = u.BuyListing(ctx, listing.ID, "0xbuyer", testNow.Add(time.Second))
	require.ErrorIs(t, err, errs.ListingNotFound)
}

func TestCancelListing(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	listing, err := u.CreateListing(ctx, CreateListingParams{
		NFTID:    "nft-1",
		Seller:   ledger.Seller{Address: "0xseller"},
		Price:    ledger.NewAmount(500),
		Quantity: 1,
	}, testNow)
	require.NoError(t, err)

	_, err = u.CancelListing(ctx, listing.ID, "0xstranger", testNow)
	require.ErrorIs(t, err, errs.Unauthorized)

	cancelled, err := u.CancelListing(ctx, listing.ID, "0xseller", testNow)
	require.NoError(t, err)
	assert.Equal(t, ledger.ListingStatusCancelled, cancelled.Status)

	// cancel is not idempotent: the listing is no longer active
	_, err = u.CancelListing(ctx, listing.ID, "0xseller", testNow)
	require.ErrorIs(t, err, errs.ListingNotFound)
}

func TestListingsFloorRecomputation(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	prices := []uint64{500, 200, 800}
	listingIDs := make(map[uint64]string)
	for _, price := range prices {
		listing, err := u.CreateListing(ctx, CreateListingParams{
			NFTID:    "nft-1",
			Seller:   ledger.Seller{Address: "0xseller"},
			Price:    ledger.NewAmount(price),
			Quantity: 1,
		}, testNow)
		require.NoError(t, err)
		listingIDs[price] = listing.ID
	}

	book, err := u.Listings(ctx, "nft-1", testNow)
	require.NoError(t, err)
	require.NotNil(t, book.FloorPrice)
	assert.Equal(t, ledger.NewAmount(200), *book.FloorPrice)
	assert.Equal(t, 3, book.TotalActiveCount)
	assert.True(t, book.TotalVolume.IsZero())

	// buying the floor listing moves the floor up and into the volume
	_, err = u.BuyListing(ctx, listingIDs[200], "0xbuyer", testNow)
	require.NoError(t, err)

	book, err = u.Listings(ctx, "nft-1", testNow)
	require.NoError(t, err)
	require.NotNil(t, book.FloorPrice)
	assert.Equal(t, ledger.NewAmount(500), *book.FloorPrice)
	assert.Equal(t, 2, book.TotalActiveCount)
	assert.Equal(t, ledger.NewAmount(200), book.TotalVolume)
}

func TestListingsLazyExpiry(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	expiresAt := testNow.Add(time.Hour)
	_, err := u.CreateListing(ctx, CreateListingParams{
		NFTID:     "nft-1",
		Seller:    ledger.Seller{Address: "0xseller"},
		Price:     ledger.NewAmount(300),
		Quantity:  1,
		ExpiresAt: &expiresAt,
	}, testNow)
	require.NoError(t, err)

	book, err := u.Listings(ctx, "nft-1", testNow.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, book.TotalActiveCount)

	book, err = u.Listings(ctx, "nft-1", testNow.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, book.TotalActiveCount)
	assert.Nil(t, book.FloorPrice)
}
