package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
)

const DefaultCheckpointInterval = 5 * time.Minute

// Snapshot returns a consistent copy of the durable ledger state.
func (u *Usecase) Snapshot(ctx context.Context) (*datagateway.Checkpoint, error) {
	checkpoint, err := u.ledgerDg.Checkpoint(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't snapshot ledger state")
	}
	return checkpoint, nil
}

// Restore replaces the ledger state with the checkpoint.
func (u *Usecase) Restore(ctx context.Context, checkpoint *datagateway.Checkpoint) error {
	if err := u.ledgerDg.RestoreCheckpoint(ctx, checkpoint); err != nil {
		return errors.Wrap(err, "can't restore ledger state")
	}
	return nil
}

// SaveCheckpoint snapshots the ledger and persists it. No-op when checkpoint
// persistence is disabled.
func (u *Usecase) SaveCheckpoint(ctx context.Context) error {
	if u.checkpointDg == nil {
		return nil
	}
	checkpoint, err := u.Snapshot(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := u.checkpointDg.SaveCheckpoint(ctx, checkpoint); err != nil {
		return errors.Wrap(err, "can't persist checkpoint")
	}
	return nil
}

// LoadCheckpoint restores the latest persisted checkpoint, if any. A missing
// checkpoint is not an error; the ledger simply starts empty.
func (u *Usecase) LoadCheckpoint(ctx context.Context) error {
	if u.checkpointDg == nil {
		return nil
	}
	checkpoint, err := u.checkpointDg.LoadCheckpoint(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			logger.InfoContext(ctx, "no checkpoint found, starting with empty ledger")
			return nil
		}
		return errors.Wrap(err, "can't load checkpoint")
	}
	if err := u.Restore(ctx, checkpoint); err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "restored ledger from checkpoint", slogx.Time("takenAt", checkpoint.TakenAt))
	return nil
}

// RunCheckpointing persists a checkpoint every interval until ctx is
// cancelled, then takes a final checkpoint before returning.
func (u *Usecase) RunCheckpointing(ctx context.Context, interval time.Duration) error {
	if u.checkpointDg == nil {
		return nil
	}
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := u.SaveCheckpoint(shutdownCtx); err != nil {
				return errors.Wrap(err, "can't save final checkpoint")
			}
			logger.InfoContext(shutdownCtx, "saved final checkpoint")
			return errors.WithStack(ctx.Err())
		case <-ticker.C:
			if err := u.SaveCheckpoint(ctx); err != nil {
				logger.ErrorContext(ctx, "failed to save checkpoint", slogx.Error(err))
				continue
			}
			logger.DebugContext(ctx, "checkpoint saved")
		}
	}
}
