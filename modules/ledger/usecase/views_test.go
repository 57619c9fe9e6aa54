package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordViewDedup(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})
	meta := ledger.ViewMeta{Referrer: "https://example.com"}

	result, err := u.RecordView(ctx, "nft", "nft-1", "10.0.0.1", meta, testNow)
	require.NoError(t, err)
	assert.True(t, result.Counted)
	assert.Equal(t, uint64(1), result.TotalViews)

	// same IP inside the window is suppressed and changes nothing
	result, err = u.RecordView(ctx, "nft", "nft-1", "10.0.0.1", meta, testNow.Add(30*time.Minute))
	require.NoError(t, err)
	assert.False(t, result.Counted)
	assert.Equal(t, uint64(1), result.TotalViews)

	// a different IP counts
	result, err = u.RecordView(ctx, "nft", "nft-1", "10.0.0.2", meta, testNow.Add(30*time.Minute))
	require.NoError(t, err)
	assert.True(t, result.Counted)
	assert.Equal(t, uint64(2), result.TotalViews)

	// the same IP counts again once the window has elapsed
	result, err = u.RecordView(ctx, "nft", "nft-1", "10.0.0.1", meta, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, result.Counted)
	assert.Equal(t, uint64(3), result.TotalViews)
}

func TestViewsQueryDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	_, err := u.RecordView(ctx, "nft", "nft-1", "10.0.0.1", ledger.ViewMeta{}, testNow)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		views, err := u.Views(ctx, "nft", "nft-1")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), views.TotalViews)
		require.Len(t, views.Recent, 1)
		assert.Equal(t, "10.0.0.1", views.Recent[0].ClientIP)
	}
}

func TestDeleteViewsClearsCounterAndHistory(t *testing.T) {
	ctx := context.Background()
	u := newTestUsecase(Config{})

	_, err := u.RecordView(ctx, "nft", "nft-1", "10.0.0.1", ledger.ViewMeta{}, testNow)
	require.NoError(t, err)

	require.NoError(t, u.DeleteViews(ctx, "nft", "nft-1"))

	_, err = u.Views(ctx, "nft", "nft-1")
	require.ErrorIs(t, err, errs.ResourceNotFound)

	err = u.DeleteViews(ctx, "nft", "nft-1")
	require.ErrorIs(t, err, errs.ResourceNotFound)

	// a reset resource starts counting from scratch, dedup history included
	result, err := u.RecordView(ctx, "nft", "nft-1", "10.0.0.1", ledger.ViewMeta{}, testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, result.Counted)
	assert.Equal(t, uint64(1), result.TotalViews)
}
