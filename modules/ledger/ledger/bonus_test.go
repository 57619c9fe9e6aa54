package ledger

import (
	"testing"
	"time"

	"github.com/openmint/platform-ledger/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCappedProgramClaim(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := NewCappedProgram(ProgramEarlyBird, 2)

	claim, err := p.Claim("0xaaa", now)
	require.NoError(t, err)
	assert.Equal(t, now, claim.ClaimedAt)
	assert.Equal(t, uint64(1), p.Issued)

	_, err = p.Claim("0xaaa", now.Add(time.Minute))
	require.ErrorIs(t, err, errs.AlreadyClaimed)
	assert.Equal(t, uint64(1), p.Issued)

	_, err = p.Claim("0xbbb", now)
	require.NoError(t, err)

	_, err = p.Claim("0xccc", now)
	require.ErrorIs(t, err, errs.ProgramExhausted)
	assert.Equal(t, uint64(2), p.Issued)
}

func TestCappedProgramCanClaimAgreesWithClaim(t *testing.T) {
	p := NewCappedProgram(ProgramEarlyBird, 1)
	now := time.Unix(1700000000, 0)

	ok, err := p.CanClaim("0xaaa")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.Claim("0xaaa", now)
	require.NoError(t, err)

	ok, err = p.CanClaim("0xaaa")
	assert.False(t, ok)
	require.ErrorIs(t, err, errs.AlreadyClaimed)

	ok, err = p.CanClaim("0xbbb")
	assert.False(t, ok)
	require.ErrorIs(t, err, errs.ProgramExhausted)
}

func TestCooldownProgramRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := NewCooldownProgram(ProgramWheel, 24*time.Hour)

	require.NoError(t, p.Claim("0xaaa", now))

	err := p.Claim("0xaaa", now.Add(time.Minute))
	require.ErrorIs(t, err, errs.CooldownActive)
	cooldownErr := new(errs.CooldownActiveError)
	require.ErrorAs(t, err, &cooldownErr)
	assert.Equal(t, 24*time.Hour-time.Minute, cooldownErr.Remaining)

	// query agrees with claim
	assert.Equal(t, cooldownErr.Remaining, p.Remaining("0xaaa", now.Add(time.Minute)))
	assert.Equal(t, time.Duration(0), p.Remaining("0xbbb", now))

	// deterministic retry after the stated wait
	require.NoError(t, p.Claim("0xaaa", now.Add(24*time.Hour)))
}
