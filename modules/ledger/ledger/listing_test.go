package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListingStatusAt(t *testing.T) {
	now := time.Unix(1700000000, 0)
	expiresAt := now.Add(time.Hour)
	l := &Listing{
		ID:        "listing-1",
		NFTID:     "nft-1",
		Price:     NewAmount(500000),
		Quantity:  1,
		Status:    ListingStatusActive,
		ListedAt:  now,
		ExpiresAt: &expiresAt,
	}

	assert.Equal(t, ListingStatusActive, l.StatusAt(now))
	assert.True(t, l.ActiveAt(now))

	// expiry is derived on read
	assert.Equal(t, ListingStatusExpired, l.StatusAt(expiresAt))
	assert.False(t, l.ActiveAt(expiresAt))

	// terminal statuses are not overridden by expiry
	l.Status = ListingStatusSold
	assert.Equal(t, ListingStatusSold, l.StatusAt(expiresAt))
}
