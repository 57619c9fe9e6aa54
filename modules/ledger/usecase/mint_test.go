package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintArmsCountdownAtTriggerSupply(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{TriggerSupply: 3, CountdownDuration: 48 * time.Hour})

	_, err := u.RegisterNFT(ctx, RegisterNFTParams{NFTID: "nft-1"}, testNow)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		result, err := u.Mint(ctx, "nft-1", false, testNow)
		require.NoError(t, err)
		assert.Equal(t, ledger.MintStateUnlimited, result.Status.State)
	}

	armTime := testNow.Add(time.Minute)
	result, err := u.Mint(ctx, "nft-1", false, armTime)
	require.NoError(t, err)
	assert.Equal(t, ledger.MintStateFinalCountdown, result.Status.State)
	require.NotNil(t, result.Status.Deadline)
	assert.Equal(t, armTime.Add(48*time.Hour), *result.Status.Deadline)

	// the armed deadline never moves
	result, err = u.Mint(ctx, "nft-1", false, armTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, armTime.Add(48*time.Hour), *result.Status.Deadline)

	// minting stays unrestricted by supply until the deadline
	result, err = u.Mint(ctx, "nft-1", false, armTime.Add(47*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ledger.MintStateFinalCountdown, result.Status.State)

	_, err = u.Mint(ctx, "nft-1", false, armTime.Add(48*time.Hour))
	require.ErrorIs(t, err, errs.MintWindowClosed)
}

func TestMintFeeSplit(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{DefaultMintPrice: ledger.NewAmount(111000)})

	_, err := u.RegisterNFT(ctx, RegisterNFTParams{NFTID: "nft-1"}, testNow)
	require.NoError(t, err)

	result, err := u.Mint(ctx, "nft-1", true, testNow)
	require.NoError(t, err)
	assert.Equal(t, ledger.NewAmount(55500), result.Fee.Creator)
	assert.Equal(t, ledger.NewAmount(11100), result.Fee.FirstMinter)
	assert.Equal(t, ledger.NewAmount(22200), result.Fee.Referral)
	assert.Equal(t, ledger.NewAmount(22200), result.Fee.Platform)
}

func TestRegisterNFTCustomPriceScheduledTrack(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{TriggerSupply: 2, CountdownDuration: 48 * time.Hour})

	window, err := u.RegisterNFT(ctx, RegisterNFTParams{
		NFTID:       "nft-custom",
		CustomPrice: lo.ToPtr(ledger.NewAmount(1000000)),
	}, testNow)
	require.NoError(t, err)
	require.NotNil(t, window.ExplicitDeadline)

	_, status, err := u.MintWindowStatus(ctx, "nft-custom", testNow)
	require.NoError(t, err)
	assert.Equal(t, ledger.MintStateScheduled, status.State)

	// supply never arms the countdown on the scheduled track
	for i := 0; i < 5; i++ {
		result, err := u.Mint(ctx, "nft-custom", false, testNow)
		require.NoError(t, err)
		assert.Equal(t, ledger.MintStateScheduled, result.Status.State)
		// custom-priced mints split 95/5
		assert.Equal(t, ledger.NewAmount(950000), result.Fee.Creator)
		assert.Equal(t, ledger.NewAmount(50000), result.Fee.Platform)
	}

	_, err = u.Mint(ctx, "nft-custom", false, testNow.Add(49*time.Hour))
	require.ErrorIs(t, err, errs.MintWindowClosed)
}

func TestRegisterNFTDuplicate(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	_, err := u.RegisterNFT(ctx, RegisterNFTParams{NFTID: "nft-1"}, testNow)
	require.NoError(t, err)
	_, err = u.RegisterNFT(ctx, RegisterNFTParams{NFTID: "nft-1"}, testNow)
	require.ErrorIs(t, err, errs.Duplicate)
}

func TestMintUnknownNFT(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	_, err := u.Mint(ctx, "nope", false, testNow)
	require.ErrorIs(t, err, errs.NotFound)
}
