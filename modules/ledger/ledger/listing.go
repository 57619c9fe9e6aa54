package ledger

import "time"

// ListingStatus is the lifecycle status of a marketplace listing.
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusCancelled ListingStatus = "cancelled"
	ListingStatusExpired   ListingStatus = "expired"
)

func (s ListingStatus) String() string {
	return string(s)
}

// Seller identifies the account that created a listing.
type Seller struct {
	Address  string `json:"address"`
	Username string `json:"username"`
}

// Listing is one marketplace offer. Listings are never physically deleted;
// sold and cancelled listings are retained so the traded volume of an NFT is
// always reconstructible. Price never changes after creation, only Status.
type Listing struct {
	ID        string
	NFTID     string
	Seller    Seller
	Price     Amount
	Quantity  uint64
	Status    ListingStatus
	ListedAt  time.Time
	ExpiresAt *time.Time
	SoldAt    *time.Time
	Buyer     string
}

// StatusAt derives the effective status at now. An active listing whose
// ExpiresAt has passed reads as expired; expiry is lazy, there is no sweep.
func (l *Listing) StatusAt(now time.Time) ListingStatus {
	if l.Status == ListingStatusActive && l.ExpiresAt != nil && !now.Before(*l.ExpiresAt) {
		return ListingStatusExpired
	}
	return l.Status
}

// ActiveAt reports whether the listing is purchasable at now.
func (l *Listing) ActiveAt(now time.Time) bool {
	return l.StatusAt(now) == ListingStatusActive
}
