package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

// Make sure Repository implements the data gateway interfaces.
var (
	_ datagateway.LedgerDataGateway = (*Repository)(nil)
)

// Config seeds the bonus programs at construction time.
type Config struct {
	EarlyBirdCap  uint64
	WheelCooldown time.Duration
}

// Repository is the in-memory keyed store behind the ledger service. It is
// created once at process start and handed to every request path; there are
// no package-level maps.
type Repository struct {
	windows  *keyedStore[*ledger.MintWindow]
	listings *keyedStore[*ledger.Listing]
	views    *keyedStore[*ledger.ViewRecord]
	capped   *keyedStore[*ledger.CappedProgram]
	cooldown *keyedStore[*ledger.CooldownProgram]

	// listingsByNFT maps nftID to listing ids in listing order.
	listingsByNFTMu sync.RWMutex
	listingsByNFT   map[string][]string
}

func New(conf Config) *Repository {
	if conf.WheelCooldown == 0 {
		conf.WheelCooldown = ledger.DefaultWheelCooldown
	}
	r := &Repository{
		windows:       newKeyedStore[*ledger.MintWindow](),
		listings:      newKeyedStore[*ledger.Listing](),
		views:         newKeyedStore[*ledger.ViewRecord](),
		capped:        newKeyedStore[*ledger.CappedProgram](),
		cooldown:      newKeyedStore[*ledger.CooldownProgram](),
		listingsByNFT: make(map[string][]string),
	}
	r.capped.create(ledger.ProgramEarlyBird, ledger.NewCappedProgram(ledger.ProgramEarlyBird, conf.EarlyBirdCap))
	r.cooldown.create(ledger.ProgramWheel, ledger.NewCooldownProgram(ledger.ProgramWheel, conf.WheelCooldown))
	return r
}

// Reads hand out copies so callers never share mutable state with the store.
// Pointer fields inside records are replaced on mutation, never written
// through, so a shallow copy plus cloned collections is enough.

func cloneMintWindow(w *ledger.MintWindow) *ledger.MintWindow {
	clone := *w
	return &clone
}

func cloneListing(l *ledger.Listing) *ledger.Listing {
	clone := *l
	return &clone
}

func cloneViewRecord(r *ledger.ViewRecord) *ledger.ViewRecord {
	clone := *r
	clone.History = slices.Clone(r.History)
	return &clone
}

func cloneCappedProgram(p *ledger.CappedProgram) *ledger.CappedProgram {
	clone := *p
	clone.Claims = maps.Clone(p.Claims)
	return &clone
}

func cloneCooldownProgram(p *ledger.CooldownProgram) *ledger.CooldownProgram {
	clone := *p
	clone.LastClaimAt = maps.Clone(p.LastClaimAt)
	return &clone
}
