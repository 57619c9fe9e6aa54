package ledger

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFeeDefaultPrice(t *testing.T) {
	defaultPrice := NewAmount(111000)

	t.Run("without referral", func(t *testing.T) {
		split, err := SplitFee(defaultPrice, defaultPrice, false)
		require.NoError(t, err)
		assert.Equal(t, NewAmount(55500), split.Creator)
		assert.Equal(t, NewAmount(11100), split.FirstMinter)
		assert.Equal(t, uint128.Zero, split.Referral)
		assert.Equal(t, NewAmount(44400), split.Platform)
	})

	t.Run("with referral", func(t *testing.T) {
		split, err := SplitFee(defaultPrice, defaultPrice, true)
		require.NoError(t, err)
		assert.Equal(t, NewAmount(55500), split.Creator)
		assert.Equal(t, NewAmount(11100), split.FirstMinter)
		assert.Equal(t, NewAmount(22200), split.Referral)
		assert.Equal(t, NewAmount(22200), split.Platform)
	})
}

func TestSplitFeeCustomPrice(t *testing.T) {
	defaultPrice := NewAmount(111000)
	customPrice := NewAmount(1000000)

	for _, hasReferral := range []bool{false, true} {
		split, err := SplitFee(customPrice, defaultPrice, hasReferral)
		require.NoError(t, err)
		assert.Equal(t, NewAmount(950000), split.Creator)
		assert.Equal(t, NewAmount(50000), split.Platform)
		// referral economics only apply to default-priced mints
		assert.True(t, split.Referral.IsZero())
		assert.True(t, split.FirstMinter.IsZero())
	}
}

func TestSplitFeeSumInvariant(t *testing.T) {
	defaultPrice := NewAmount(111000)

	// totals chosen to not divide evenly by the percentage shares
	totals := []uint64{1, 2, 3, 7, 99, 101, 111000, 111001, 333333, 999999999999999999}
	for _, total := range totals {
		for _, hasReferral := range []bool{false, true} {
			split, err := SplitFee(NewAmount(total), defaultPrice, hasReferral)
			require.NoError(t, err)
			sum := split.Creator.Add(split.FirstMinter).Add(split.Referral).Add(split.Platform)
			assert.Equal(t, NewAmount(total), sum, "total=%d hasReferral=%v", total, hasReferral)
		}
	}
}

func TestSplitFeeRemainderRoundsIntoPlatform(t *testing.T) {
	defaultPrice := NewAmount(7)
	split, err := SplitFee(defaultPrice, defaultPrice, true)
	require.NoError(t, err)
	// 50% of 7 = 3, 10% = 0, 20% = 1; remainder lands on platform
	assert.Equal(t, NewAmount(3), split.Creator)
	assert.Equal(t, NewAmount(0), split.FirstMinter)
	assert.Equal(t, NewAmount(1), split.Referral)
	assert.Equal(t, NewAmount(3), split.Platform)
}

func TestSplitFeeZeroTotal(t *testing.T) {
	_, err := SplitFee(uint128.Zero, NewAmount(111000), false)
	require.ErrorIs(t, err, errs.InvalidAmount)
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("111000")
	require.NoError(t, err)
	assert.Equal(t, NewAmount(111000), amount)

	_, err = ParseAmount("-1")
	require.ErrorIs(t, err, errs.InvalidAmount)

	_, err = ParseAmount("1.5")
	require.ErrorIs(t, err, errs.InvalidAmount)

	_, err = ParseAmount("not a number")
	require.ErrorIs(t, err, errs.InvalidAmount)
}
