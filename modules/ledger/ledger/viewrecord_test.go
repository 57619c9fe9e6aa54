package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRecordDedup(t *testing.T) {
	r := &ViewRecord{ResourceType: "nft", ResourceID: "1"}
	now := time.Unix(1700000000, 0)

	assert.True(t, r.Record("10.0.0.1", now, ViewMeta{}))
	assert.False(t, r.Record("10.0.0.1", now.Add(30*time.Minute), ViewMeta{}))
	assert.Equal(t, uint64(1), r.Count)

	// a different client is a new view
	assert.True(t, r.Record("10.0.0.2", now.Add(30*time.Minute), ViewMeta{}))
	assert.Equal(t, uint64(2), r.Count)

	// the same client counts again once the window has elapsed
	assert.True(t, r.Record("10.0.0.1", now.Add(time.Hour), ViewMeta{}))
	assert.Equal(t, uint64(3), r.Count)
}

func TestViewRecordHistoryBounded(t *testing.T) {
	r := &ViewRecord{ResourceType: "nft", ResourceID: "1"}
	now := time.Unix(1700000000, 0)

	for i := 0; i < ViewHistoryCapacity+20; i++ {
		ip := fmt.Sprintf("10.0.%d.%d", i/256, i%256)
		require.True(t, r.Record(ip, now.Add(time.Duration(i)*time.Second), ViewMeta{}))
	}
	assert.Equal(t, uint64(ViewHistoryCapacity+20), r.Count)
	assert.Len(t, r.History, ViewHistoryCapacity)

	// oldest entries are evicted first
	assert.Equal(t, now.Add(20*time.Second), r.History[0].At)
}

func TestViewRecordRecent(t *testing.T) {
	r := &ViewRecord{ResourceType: "nft", ResourceID: "1"}
	now := time.Unix(1700000000, 0)
	for i := 0; i < 5; i++ {
		ip := fmt.Sprintf("10.0.0.%d", i)
		require.True(t, r.Record(ip, now.Add(time.Duration(i)*time.Minute), ViewMeta{Referrer: ip}))
	}

	recent := r.Recent(3)
	require.Len(t, recent, 3)
	// newest first
	assert.Equal(t, "10.0.0.4", recent[0].ClientIP)
	assert.Equal(t, "10.0.0.2", recent[2].ClientIP)

	assert.Len(t, r.Recent(10), 5)
}
