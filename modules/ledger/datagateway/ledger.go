package datagateway

import (
	"context"
	"time"

	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

type LedgerDataGateway interface {
	MintWindowDataGateway
	ListingDataGateway
	ViewDataGateway
	BonusDataGateway

	// Checkpoint returns a consistent copy of all durable ledger state.
	Checkpoint(ctx context.Context) (*Checkpoint, error)
	// RestoreCheckpoint replaces the store contents with the checkpoint.
	RestoreCheckpoint(ctx context.Context, checkpoint *Checkpoint) error
}

// All mutating operations are linearizable per logical key: an update closure
// runs under the key's exclusion guarantee and either fully applies or, when
// it returns an error, leaves the record untouched.
type MintWindowDataGateway interface {
	// CreateMintWindow registers a new window. Returns errs.Duplicate if a window for the NFT already exists.
	CreateMintWindow(ctx context.Context, window *ledger.MintWindow) error
	// GetMintWindow returns the window for the NFT. Returns errs.NotFound if absent.
	GetMintWindow(ctx context.Context, nftID string) (*ledger.MintWindow, error)
	// UpdateMintWindow applies fn to the window under the NFT key lock and returns the updated window.
	UpdateMintWindow(ctx context.Context, nftID string, fn func(*ledger.MintWindow) error) (*ledger.MintWindow, error)
}

type ListingDataGateway interface {
	CreateListing(ctx context.Context, listing *ledger.Listing) error
	// GetListing returns the listing. Returns errs.ListingNotFound if absent.
	GetListing(ctx context.Context, listingID string) (*ledger.Listing, error)
	// GetListingsByNFT returns all listings for the NFT regardless of status, in listing order.
	GetListingsByNFT(ctx context.Context, nftID string) ([]*ledger.Listing, error)
	// UpdateListing applies fn to the listing under the listing key lock. Returns errs.ListingNotFound if absent.
	UpdateListing(ctx context.Context, listingID string, fn func(*ledger.Listing) error) (*ledger.Listing, error)
}

type ViewDataGateway interface {
	// UpdateViewRecord applies fn to the resource's view record, creating it lazily on first use.
	UpdateViewRecord(ctx context.Context, resourceType, resourceID string, fn func(*ledger.ViewRecord) error) (*ledger.ViewRecord, error)
	// GetViewRecord returns the resource's view record. Returns errs.ResourceNotFound if absent.
	GetViewRecord(ctx context.Context, resourceType, resourceID string) (*ledger.ViewRecord, error)
	// DeleteViewRecord clears both counter and history atomically.
	DeleteViewRecord(ctx context.Context, resourceType, resourceID string) error
}

type BonusDataGateway interface {
	// GetCappedProgram returns the program. Returns errs.NotFound if the program is not registered.
	GetCappedProgram(ctx context.Context, programID string) (*ledger.CappedProgram, error)
	// UpdateCappedProgram applies fn under the program lock; the capacity
	// check and counter increment inside fn are one atomic step.
	UpdateCappedProgram(ctx context.Context, programID string, fn func(*ledger.CappedProgram) error) (*ledger.CappedProgram, error)
	GetCooldownProgram(ctx context.Context, programID string) (*ledger.CooldownProgram, error)
	UpdateCooldownProgram(ctx context.Context, programID string, fn func(*ledger.CooldownProgram) error) (*ledger.CooldownProgram, error)
}

// Checkpoint is a point-in-time copy of the durable ledger records
// (view counters are ephemeral and intentionally excluded).
type Checkpoint struct {
	TakenAt          time.Time
	MintWindows      []*ledger.MintWindow
	Listings         []*ledger.Listing
	CappedPrograms   []*ledger.CappedProgram
	CooldownPrograms []*ledger.CooldownProgram
}

// CheckpointDataGateway persists checkpoints so ledger state survives restarts.
type CheckpointDataGateway interface {
	// SaveCheckpoint atomically replaces the stored checkpoint.
	SaveCheckpoint(ctx context.Context, checkpoint *Checkpoint) error
	// LoadCheckpoint returns the latest stored checkpoint. Returns errs.NotFound if none was saved yet.
	LoadCheckpoint(ctx context.Context) (*Checkpoint, error)
}
