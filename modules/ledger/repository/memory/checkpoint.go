package memory

import (
	"context"
	"slices"
	"time"

	"github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

func (r *Repository) Checkpoint(_ context.Context) (*datagateway.Checkpoint, error) {
	checkpoint := &datagateway.Checkpoint{TakenAt: time.Now()}

	for _, nftID := range sorted(r.windows.keys()) {
		if entry, ok := r.windows.get(nftID); ok {
			window, _ := update(entry, func(w *ledger.MintWindow) (*ledger.MintWindow, error) {
				return cloneMintWindow(w), nil
			})
			checkpoint.MintWindows = append(checkpoint.MintWindows, window)
		}
	}

	r.listingsByNFTMu.RLock()
	listingIDs := make([]string, 0)
	for _, nftID := range sortedKeys(r.listingsByNFT) {
		listingIDs = append(listingIDs, r.listingsByNFT[nftID]...)
	}
	r.listingsByNFTMu.RUnlock()
	for _, id := range listingIDs {
		if entry, ok := r.listings.get(id); ok {
			listing, _ := update(entry, func(l *ledger.Listing) (*ledger.Listing, error) {
				return cloneListing(l), nil
			})
			checkpoint.Listings = append(checkpoint.Listings, listing)
		}
	}

	for _, programID := range sorted(r.capped.keys()) {
		if entry, ok := r.capped.get(programID); ok {
			program, _ := update(entry, func(p *ledger.CappedProgram) (*ledger.CappedProgram, error) {
				return cloneCappedProgram(p), nil
			})
			checkpoint.CappedPrograms = append(checkpoint.CappedPrograms, program)
		}
	}
	for _, programID := range sorted(r.cooldown.keys()) {
		if entry, ok := r.cooldown.get(programID); ok {
			program, _ := update(entry, func(p *ledger.CooldownProgram) (*ledger.CooldownProgram, error) {
				return cloneCooldownProgram(p), nil
			})
			checkpoint.CooldownPrograms = append(checkpoint.CooldownPrograms, program)
		}
	}

	return checkpoint, nil
}

func (r *Repository) RestoreCheckpoint(_ context.Context, checkpoint *datagateway.Checkpoint) error {
	r.windows.reset()
	r.listings.reset()
	r.capped.reset()
	r.cooldown.reset()

	for _, window := range checkpoint.MintWindows {
		r.windows.create(window.NFTID, cloneMintWindow(window))
	}

	r.listingsByNFTMu.Lock()
	r.listingsByNFT = make(map[string][]string)
	for _, listing := range checkpoint.Listings {
		if r.listings.create(listing.ID, cloneListing(listing)) {
			r.listingsByNFT[listing.NFTID] = append(r.listingsByNFT[listing.NFTID], listing.ID)
		}
	}
	r.listingsByNFTMu.Unlock()

	for _, program := range checkpoint.CappedPrograms {
		r.capped.create(program.ProgramID, cloneCappedProgram(program))
	}
	for _, program := range checkpoint.CooldownPrograms {
		r.cooldown.create(program.ProgramID, cloneCooldownProgram(program))
	}
	return nil
}

func sorted(keys []string) []string {
	slices.Sort(keys)
	return keys
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
