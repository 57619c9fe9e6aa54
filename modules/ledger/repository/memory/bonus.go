package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

func (r *Repository) GetCappedProgram(_ context.Context, programID string) (*ledger.CappedProgram, error) {
	entry, ok := r.capped.get(programID)
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "capped program %q", programID)
	}
	return update(entry, func(p *ledger.CappedProgram) (*ledger.CappedProgram, error) {
		return cloneCappedProgram(p), nil
	})
}

func (r *Repository) UpdateCappedProgram(_ context.Context, programID string, fn func(*ledger.CappedProgram) error) (*ledger.CappedProgram, error) {
	entry, ok := r.capped.get(programID)
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "capped program %q", programID)
	}
	return update(entry, func(p *ledger.CappedProgram) (*ledger.CappedProgram, error) {
		if err := fn(p); err != nil {
			return nil, err
		}
		return cloneCappedProgram(p), nil
	})
}

func (r *Repository) GetCooldownProgram(_ context.Context, programID string) (*ledger.CooldownProgram, error) {
	entry, ok := r.cooldown.get(programID)
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "cooldown program %q", programID)
	}
	return update(entry, func(p *ledger.CooldownProgram) (*ledger.CooldownProgram, error) {
		return cloneCooldownProgram(p), nil
	})
}

func (r *Repository) UpdateCooldownProgram(_ context.Context, programID string, fn func(*ledger.CooldownProgram) error) (*ledger.CooldownProgram, error) {
	entry, ok := r.cooldown.get(programID)
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "cooldown program %q", programID)
	}
	return update(entry, func(p *ledger.CooldownProgram) (*ledger.CooldownProgram, error) {
		if err := fn(p); err != nil {
			return nil, err
		}
		return cloneCooldownProgram(p), nil
	})
}
