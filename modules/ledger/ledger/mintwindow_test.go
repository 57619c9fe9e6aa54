package ledger

import (
	"testing"
	"time"

	"github.com/openmint/platform-ledger/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow() *MintWindow {
	return &MintWindow{
		NFTID:             "nft-1",
		TriggerSupply:     3,
		CountdownDuration: 48 * time.Hour,
		CreatedAt:         time.Unix(1700000000, 0),
	}
}

func TestMintWindowArming(t *testing.T) {
	w := newTestWindow()
	now := w.CreatedAt

	require.Equal(t, MintStateUnlimited, w.Status(now).State)

	require.NoError(t, w.RecordMint(now))
	require.NoError(t, w.RecordMint(now))
	assert.Equal(t, MintStateUnlimited, w.Status(now).State)
	assert.Nil(t, w.ExplicitDeadline)

	// crossing the trigger supply arms the countdown
	require.NoError(t, w.RecordMint(now))
	status := w.Status(now)
	assert.Equal(t, MintStateFinalCountdown, status.State)
	assert.Equal(t, 48*time.Hour, status.Remaining)
	require.NotNil(t, w.ExplicitDeadline)
	assert.Equal(t, now.Add(48*time.Hour), *w.ExplicitDeadline)
}

func TestMintWindowArmingIsIdempotent(t *testing.T) {
	w := newTestWindow()
	now := w.CreatedAt
	for i := 0; i < 3; i++ {
		require.NoError(t, w.RecordMint(now))
	}
	deadline := *w.ExplicitDeadline

	// further mints never move the armed deadline
	later := now.Add(time.Hour)
	require.NoError(t, w.RecordMint(later))
	require.NoError(t, w.RecordMint(later))
	assert.Equal(t, deadline, *w.ExplicitDeadline)
	assert.Equal(t, uint64(5), w.MintedSupply)
}

func TestMintWindowFinalizesLazily(t *testing.T) {
	w := newTestWindow()
	now := w.CreatedAt
	for i := 0; i < 3; i++ {
		require.NoError(t, w.RecordMint(now))
	}

	beforeDeadline := now.Add(48*time.Hour - time.Second)
	assert.Equal(t, MintStateFinalCountdown, w.Status(beforeDeadline).State)
	assert.Equal(t, time.Second, w.Status(beforeDeadline).Remaining)

	atDeadline := now.Add(48 * time.Hour)
	assert.Equal(t, MintStateFinalized, w.Status(atDeadline).State)
	assert.Equal(t, time.Duration(0), w.Status(atDeadline).Remaining)

	// finalized is terminal
	muchLater := atDeadline.Add(1000 * time.Hour)
	assert.Equal(t, MintStateFinalized, w.Status(muchLater).State)

	err := w.RecordMint(atDeadline)
	require.ErrorIs(t, err, errs.MintWindowClosed)
	assert.Equal(t, uint64(3), w.MintedSupply)
}

func TestMintWindowScheduled(t *testing.T) {
	now := time.Unix(1700000000, 0)
	deadline := now.Add(24 * time.Hour)
	price := NewAmount(500000)
	w := &MintWindow{
		NFTID:             "nft-custom",
		TriggerSupply:     DefaultTriggerSupply,
		CountdownDuration: DefaultCountdownDuration,
		ExplicitDeadline:  &deadline,
		CustomPrice:       &price,
		CreatedAt:         now,
	}

	status := w.Status(now)
	assert.Equal(t, MintStateScheduled, status.State)
	assert.Equal(t, 24*time.Hour, status.Remaining)

	// supply never arms a scheduled window
	for i := 0; i < DefaultTriggerSupply+1; i++ {
		require.NoError(t, w.RecordMint(now))
	}
	assert.Equal(t, MintStateScheduled, w.Status(now).State)
	assert.Nil(t, w.ArmedAt)
	assert.Equal(t, deadline, *w.ExplicitDeadline)

	assert.Equal(t, MintStateFinalized, w.Status(deadline).State)
	require.ErrorIs(t, w.RecordMint(deadline), errs.MintWindowClosed)
}
