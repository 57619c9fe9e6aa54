package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/modules/ledger/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &stubCheckpointStore{}
	conf := Config{
		DefaultMintPrice: ledger.NewAmount(111000),
		TriggerSupply:    3,
		WheelRewards:     []ledger.Amount{ledger.NewAmount(100)},
	}

	u := New(memory.New(memory.Config{EarlyBirdCap: 5}), store, nil, conf)

	_, err := u.RegisterNFT(ctx, RegisterNFTParams{NFTID: "nft-1"}, testNow)
	require.NoError(t, err)
	_, err = u.Mint(ctx, "nft-1", false, testNow)
	require.NoError(t, err)
	listing, err := u.CreateListing(ctx, CreateListingParams{
		NFTID:    "nft-1",
		Seller:   ledger.Seller{Address: "0xseller"},
		Price:    ledger.NewAmount(500),
		Quantity: 1,
	}, testNow)
	require.NoError(t, err)
	_, err = u.ClaimEarlyBird(ctx, "0xaaa", testNow)
	require.NoError(t, err)
	_, err = u.SpinWheel(ctx, "0xbbb", testNow)
	require.NoError(t, err)

	require.NoError(t, u.SaveCheckpoint(ctx))

	// a fresh process restores the full durable state from the same store
	restored := New(memory.New(memory.Config{EarlyBirdCap: 5}), store, nil, conf)
	require.NoError(t, restored.LoadCheckpoint(ctx))

	window, _, err := restored.MintWindowStatus(ctx, "nft-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), window.MintedSupply)

	book, err := restored.Listings(ctx, "nft-1", testNow)
	require.NoError(t, err)
	require.Len(t, book.ActiveListings, 1)
	assert.Equal(t, listing.ID, book.ActiveListings[0].ID)

	status, err := restored.BonusStatus(ctx, ledger.ProgramEarlyBird, "0xaaa", testNow)
	require.NoError(t, err)
	assert.False(t, status.CanClaim)

	status, err = restored.BonusStatus(ctx, ledger.ProgramWheel, "0xbbb", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, status.CanClaim)
	assert.Equal(t, 23*time.Hour, status.Remaining)
}

func TestLoadCheckpointMissingIsNotAnError(t *testing.T) {
	ctx := context.Background()
	u := New(memory.New(memory.Config{EarlyBirdCap: 5}), &stubCheckpointStore{}, nil, Config{
		DefaultMintPrice: ledger.NewAmount(111000),
	})
	require.NoError(t, u.LoadCheckpoint(ctx))
}

func TestSaveCheckpointDisabled(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})
	// no checkpoint store wired
	require.NoError(t, u.SaveCheckpoint(ctx))
	require.NoError(t, u.LoadCheckpoint(ctx))
}

func TestRunCheckpointingFinalSaveBeforeReturn(t *testing.T) {
	ctx := context.Background()
	store := &stubCheckpointStore{}
	u := New(memory.New(memory.Config{EarlyBirdCap: 5}), store, nil, Config{
		DefaultMintPrice: ledger.NewAmount(111000),
	})

	_, err := u.RegisterNFT(ctx, RegisterNFTParams{NFTID: "nft-1"}, testNow)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- u.RunCheckpointing(runCtx, time.Hour)
	}()
	cancel()

	// Once RunCheckpointing has returned, the final checkpoint must already
	// be persisted; shutdown relies on this ordering.
	err = <-done
	require.ErrorIs(t, err, context.Canceled)

	store.mu.Lock()
	saved := store.saved
	store.mu.Unlock()
	require.NotNil(t, saved)
	assert.Len(t, saved.MintWindows, 1)
	assert.Equal(t, "nft-1", saved.MintWindows[0].NFTID)
}
