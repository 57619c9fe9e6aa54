package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

const recentViewsLimit = 10

type RecordViewResult struct {
	// Counted is false when the view was suppressed by the per-IP dedup window.
	Counted    bool
	TotalViews uint64
}

func (u *Usecase) RecordView(ctx context.Context, resourceType, resourceID, clientIP string, meta ledger.ViewMeta, now time.Time) (*RecordViewResult, error) {
	var counted bool
	record, err := u.ledgerDg.UpdateViewRecord(ctx, resourceType, resourceID, func(r *ledger.ViewRecord) error {
		counted = r.Record(clientIP, now, meta)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't record view for %s/%s", resourceType, resourceID)
	}
	return &RecordViewResult{Counted: counted, TotalViews: record.Count}, nil
}

type ViewsResult struct {
	TotalViews uint64
	// Recent holds the most recent counted views, newest first.
	Recent []ledger.ViewEntry
}

func (u *Usecase) Views(ctx context.Context, resourceType, resourceID string) (*ViewsResult, error) {
	record, err := u.ledgerDg.GetViewRecord(ctx, resourceType, resourceID)
	if err != nil {
		return nil, errors.Wrapf(err, "can't get views for %s/%s", resourceType, resourceID)
	}
	return &ViewsResult{
		TotalViews: record.Count,
		Recent:     record.Recent(recentViewsLimit),
	}, nil
}

// DeleteViews clears both the counter and the history of the resource.
func (u *Usecase) DeleteViews(ctx context.Context, resourceType, resourceID string) error {
	if err := u.ledgerDg.DeleteViewRecord(ctx, resourceType, resourceID); err != nil {
		return errors.Wrapf(err, "can't delete views for %s/%s", resourceType, resourceID)
	}
	return nil
}
