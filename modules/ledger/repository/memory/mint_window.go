package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

func (r *Repository) CreateMintWindow(_ context.Context, window *ledger.MintWindow) error {
	if !r.windows.create(window.NFTID, cloneMintWindow(window)) {
		return errors.Wrapf(errs.Duplicate, "mint window for nft %q already exists", window.NFTID)
	}
	return nil
}

func (r *Repository) GetMintWindow(_ context.Context, nftID string) (*ledger.MintWindow, error) {
	entry, ok := r.windows.get(nftID)
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "mint window for nft %q", nftID)
	}
	return update(entry, func(w *ledger.MintWindow) (*ledger.MintWindow, error) {
		return cloneMintWindow(w), nil
	})
}

func (r *Repository) UpdateMintWindow(_ context.Context, nftID string, fn func(*ledger.MintWindow) error) (*ledger.MintWindow, error) {
	entry, ok := r.windows.get(nftID)
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "mint window for nft %q", nftID)
	}
	return update(entry, func(w *ledger.MintWindow) (*ledger.MintWindow, error) {
		if err := fn(w); err != nil {
			return nil, err
		}
		return cloneMintWindow(w), nil
	})
}
