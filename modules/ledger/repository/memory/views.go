package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

func viewKey(resourceType, resourceID string) string {
	return resourceType + "/" + resourceID
}

func (r *Repository) UpdateViewRecord(_ context.Context, resourceType, resourceID string, fn func(*ledger.ViewRecord) error) (*ledger.ViewRecord, error) {
	entry := r.views.getOrCreate(viewKey(resourceType, resourceID), func() *ledger.ViewRecord {
		return &ledger.ViewRecord{ResourceType: resourceType, ResourceID: resourceID}
	})
	return update(entry, func(record *ledger.ViewRecord) (*ledger.ViewRecord, error) {
		if err := fn(record); err != nil {
			return nil, err
		}
		return cloneViewRecord(record), nil
	})
}

func (r *Repository) GetViewRecord(_ context.Context, resourceType, resourceID string) (*ledger.ViewRecord, error) {
	entry, ok := r.views.get(viewKey(resourceType, resourceID))
	if !ok {
		return nil, errors.Wrapf(errs.ResourceNotFound, "no views recorded for %s %q", resourceType, resourceID)
	}
	return update(entry, func(record *ledger.ViewRecord) (*ledger.ViewRecord, error) {
		return cloneViewRecord(record), nil
	})
}

func (r *Repository) DeleteViewRecord(_ context.Context, resourceType, resourceID string) error {
	if !r.views.delete(viewKey(resourceType, resourceID)) {
		return errors.Wrapf(errs.ResourceNotFound, "no views recorded for %s %q", resourceType, resourceID)
	}
	return nil
}
