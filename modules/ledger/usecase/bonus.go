package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
	"github.com/openmint/platform-ledger/pkg/reportingclient"
)

// ClaimEarlyBird grants one early-bird slot to address. The capacity check
// and the grant are one atomic step under the program lock, so the cap is
// never oversubscribed however many claims race for the last slot.
func (u *Usecase) ClaimEarlyBird(ctx context.Context, address string, now time.Time) (*ledger.BonusClaim, error) {
	var claim *ledger.BonusClaim
	_, err := u.ledgerDg.UpdateCappedProgram(ctx, ledger.ProgramEarlyBird, func(p *ledger.CappedProgram) error {
		var claimErr error
		claim, claimErr = p.Claim(address, now)
		return claimErr
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't claim %q for %q", ledger.ProgramEarlyBird, address)
	}
	u.submitBonusReport(ctx, ledger.ProgramEarlyBird, address, "", now)
	return claim, nil
}

type SpinResult struct {
	Reward    ledger.Amount
	ClaimedAt time.Time
}

// SpinWheel spins the reward wheel for address. A spin inside the cooldown
// window returns errs.CooldownActiveError without consuming anything.
func (u *Usecase) SpinWheel(ctx context.Context, address string, now time.Time) (*SpinResult, error) {
	if len(u.wheelRewards) == 0 {
		return nil, errors.Wrap(errs.Unsupported, "no wheel rewards configured")
	}
	_, err := u.ledgerDg.UpdateCooldownProgram(ctx, ledger.ProgramWheel, func(p *ledger.CooldownProgram) error {
		return p.Claim(address, now)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't spin wheel for %q", address)
	}
	reward := u.wheelRewards[rand.IntN(len(u.wheelRewards))]
	u.submitBonusReport(ctx, ledger.ProgramWheel, address, reward.String(), now)
	return &SpinResult{Reward: reward, ClaimedAt: now}, nil
}

type BonusStatusResult struct {
	ProgramID string
	CanClaim  bool
	// Remaining is the cooldown wait; zero for capped programs.
	Remaining time.Duration
	// Reason explains a false CanClaim, e.g. "already claimed".
	Reason string
}

// BonusStatus reports, without side effects, exactly what a claim by address
// at now would decide.
func (u *Usecase) BonusStatus(ctx context.Context, programID, address string, now time.Time) (*BonusStatusResult, error) {
	result := &BonusStatusResult{ProgramID: programID}
	switch programID {
	case ledger.ProgramEarlyBird:
		program, err := u.ledgerDg.GetCappedProgram(ctx, programID)
		if err != nil {
			return nil, errors.Wrapf(err, "can't get program %q", programID)
		}
		ok, reason := program.CanClaim(address)
		result.CanClaim = ok
		if reason != nil {
			result.Reason = reason.Error()
		}
	case ledger.ProgramWheel:
		program, err := u.ledgerDg.GetCooldownProgram(ctx, programID)
		if err != nil {
			return nil, errors.Wrapf(err, "can't get program %q", programID)
		}
		remaining := program.Remaining(address, now)
		result.CanClaim = remaining == 0
		result.Remaining = remaining
		if remaining > 0 {
			result.Reason = errs.CooldownActive.Error()
		}
	default:
		return nil, errors.Wrapf(errs.NotFound, "unknown bonus program %q", programID)
	}
	return result, nil
}

func (u *Usecase) submitBonusReport(ctx context.Context, programID, address, reward string, now time.Time) {
	if u.reportingClient == nil {
		return
	}
	payload := reportingclient.SubmitBonusReportPayload{
		ProgramID: programID,
		Address:   address,
		Reward:    reward,
		ClaimedAt: now,
	}
	if err := u.reportingClient.SubmitBonusReport(ctx, payload); err != nil {
		logger.WarnContext(ctx, "failed to submit bonus report", slogx.Error(err), slogx.String("programId", programID))
	}
}
