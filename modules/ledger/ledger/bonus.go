package ledger

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
)

// Program identifiers for the built-in bonus programs.
const (
	ProgramEarlyBird = "early-bird"
	ProgramWheel     = "wheel"
)

const DefaultWheelCooldown = 24 * time.Hour

// BonusClaim records one granted one-shot claim.
type BonusClaim struct {
	Address   string
	ClaimedAt time.Time
}

// CappedProgram is a single-claim bonus program with a global capacity cap.
// Issued never decreases; a claim is granted only while Issued < Cap at the
// moment of the claim. Callers must serialize Claim per program.
type CappedProgram struct {
	ProgramID string
	Cap       uint64
	Issued    uint64
	Claims    map[string]*BonusClaim
}

func NewCappedProgram(programID string, cap uint64) *CappedProgram {
	return &CappedProgram{
		ProgramID: programID,
		Cap:       cap,
		Claims:    make(map[string]*BonusClaim),
	}
}

// Claim grants the bonus to address at now. The capacity check and the
// counter increment are one step under the caller's program lock, so two
// claims racing for the last slot yield exactly one grant.
func (p *CappedProgram) Claim(address string, now time.Time) (*BonusClaim, error) {
	if _, ok := p.Claims[address]; ok {
		return nil, errors.Wrapf(errs.AlreadyClaimed, "%q already claimed %q", address, p.ProgramID)
	}
	if p.Issued >= p.Cap {
		return nil, errors.Wrapf(errs.ProgramExhausted, "program %q issued all %d slots", p.ProgramID, p.Cap)
	}
	p.Issued++
	claim := &BonusClaim{Address: address, ClaimedAt: now}
	p.Claims[address] = claim
	return claim, nil
}

// CanClaim reports whether a Claim by address would currently be granted.
func (p *CappedProgram) CanClaim(address string) (bool, error) {
	if _, ok := p.Claims[address]; ok {
		return false, errors.WithStack(errs.AlreadyClaimed)
	}
	if p.Issued >= p.Cap {
		return false, errors.WithStack(errs.ProgramExhausted)
	}
	return true, nil
}

// CooldownProgram is a repeatable bonus program gated by a per-user cooldown.
type CooldownProgram struct {
	ProgramID   string
	Cooldown    time.Duration
	LastClaimAt map[string]time.Time
}

func NewCooldownProgram(programID string, cooldown time.Duration) *CooldownProgram {
	return &CooldownProgram{
		ProgramID:   programID,
		Cooldown:    cooldown,
		LastClaimAt: make(map[string]time.Time),
	}
}

// Claim grants the bonus to address at now, or returns an
// errs.CooldownActiveError with the remaining wait. Retrying after the stated
// duration succeeds deterministically.
func (p *CooldownProgram) Claim(address string, now time.Time) error {
	if remaining := p.Remaining(address, now); remaining > 0 {
		return errors.WithStack(&errs.CooldownActiveError{Remaining: remaining})
	}
	p.LastClaimAt[address] = now
	return nil
}

// Remaining returns the wait before address may claim again; zero when a
// claim would be granted. Agrees exactly with what Claim would decide at now.
func (p *CooldownProgram) Remaining(address string, now time.Time) time.Duration {
	last, ok := p.LastClaimAt[address]
	if !ok {
		return 0
	}
	remaining := p.Cooldown - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
