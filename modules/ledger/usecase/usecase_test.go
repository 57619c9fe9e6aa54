package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/modules/ledger/repository/memory"
)

var testNow = time.Unix(1700000000, 0).UTC()

func newTestUsecase(conf Config) *Usecase {
	repo := memory.New(memory.Config{
		EarlyBirdCap:  100,
		WheelCooldown: 24 * time.Hour,
	})
	if conf.DefaultMintPrice.IsZero() {
		conf.DefaultMintPrice = ledger.NewAmount(111000)
	}
	return New(repo, nil, nil, conf)
}

// stubCheckpointStore keeps the last checkpoint in memory.
type stubCheckpointStore struct {
	mu    sync.Mutex
	saved *datagateway.Checkpoint
}

var _ datagateway.CheckpointDataGateway = (*stubCheckpointStore)(nil)

func (s *stubCheckpointStore) SaveCheckpoint(_ context.Context, checkpoint *datagateway.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = checkpoint
	return nil
}

func (s *stubCheckpointStore) LoadCheckpoint(_ context.Context) (*datagateway.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return nil, errors.WithStack(errs.NotFound)
	}
	return s.saved, nil
}
