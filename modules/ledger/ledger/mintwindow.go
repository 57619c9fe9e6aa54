package ledger

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
)

// MintState is the derived lifecycle state of a mint window.
type MintState string

const (
	// MintStateUnlimited is the initial state: open minting, countdown not armed.
	MintStateUnlimited MintState = "unlimited"
	// MintStateFinalCountdown means the trigger supply was reached and the
	// fixed-duration countdown is running. Minting stays unrestricted by supply.
	MintStateFinalCountdown MintState = "final_countdown"
	// MintStateScheduled is the custom-price track: the deadline was set at
	// creation instead of being armed by supply.
	MintStateScheduled MintState = "scheduled"
	// MintStateFinalized is terminal; all mint attempts are rejected.
	MintStateFinalized MintState = "finalized"
)

func (s MintState) String() string {
	return string(s)
}

const (
	DefaultTriggerSupply     = 1000
	DefaultCountdownDuration = 48 * time.Hour
)

// MintWindow tracks per-NFT minting. There is no stored "current state"
// field: the state is recomputed from the stored anchors and the caller's
// clock on every read, so stored and derived state can never drift.
type MintWindow struct {
	NFTID             string
	MintedSupply      uint64
	TriggerSupply     uint64
	CountdownDuration time.Duration
	// ExplicitDeadline is set at creation for custom-priced mints, or stamped
	// when the countdown arms.
	ExplicitDeadline *time.Time
	// ArmedAt is the time the supply trigger fired. Nil for scheduled windows.
	ArmedAt *time.Time
	// CustomPrice overrides the platform default mint price when set.
	CustomPrice *Amount
	CreatedAt   time.Time
}

// MintWindowStatus is the lazily derived state of a window at a point in time.
type MintWindowStatus struct {
	State MintState
	// Remaining is max(0, deadline - now); zero unless a deadline exists.
	Remaining time.Duration
	Deadline  *time.Time
}

// Status derives the window state at now.
func (w *MintWindow) Status(now time.Time) MintWindowStatus {
	if w.ExplicitDeadline != nil {
		remaining := w.ExplicitDeadline.Sub(now)
		if remaining <= 0 {
			return MintWindowStatus{State: MintStateFinalized, Deadline: w.ExplicitDeadline}
		}
		state := MintStateScheduled
		if w.ArmedAt != nil {
			state = MintStateFinalCountdown
		}
		return MintWindowStatus{State: state, Remaining: remaining, Deadline: w.ExplicitDeadline}
	}
	return MintWindowStatus{State: MintStateUnlimited}
}

// RecordMint applies one successful mint at now: rejects finalized windows,
// increments the minted supply and arms the countdown the instant the trigger
// supply is crossed. Arming is idempotent; an armed deadline never moves.
func (w *MintWindow) RecordMint(now time.Time) error {
	if w.Status(now).State == MintStateFinalized {
		return errors.Wrapf(errs.MintWindowClosed, "mint window for nft %q finalized", w.NFTID)
	}
	w.MintedSupply++
	if w.ExplicitDeadline == nil && w.ArmedAt == nil && w.MintedSupply >= w.TriggerSupply {
		armedAt := now
		deadline := now.Add(w.CountdownDuration)
		w.ArmedAt = &armedAt
		w.ExplicitDeadline = &deadline
	}
	return nil
}
