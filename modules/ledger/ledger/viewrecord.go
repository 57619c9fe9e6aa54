package ledger

import "time"

const (
	// ViewHistoryCapacity bounds the per-resource view history. Oldest entries
	// are evicted first regardless of dedup relevance; duplicate suppression
	// beyond the last 100 counted views per resource is not guaranteed.
	ViewHistoryCapacity = 100

	// ViewDedupWindow is the rolling window within which repeat views from the
	// same client IP are not counted.
	ViewDedupWindow = time.Hour
)

// ViewEntry is one counted view event.
type ViewEntry struct {
	At        time.Time     `json:"at"`
	ClientIP  string        `json:"clientIp"`
	TimeSpent time.Duration `json:"timeSpent"`
	Referrer  string        `json:"referrer"`
}

// ViewMeta carries caller-supplied view metadata.
type ViewMeta struct {
	TimeSpent time.Duration
	Referrer  string
}

// ViewRecord is the per-resource view counter with its bounded history.
type ViewRecord struct {
	ResourceType string
	ResourceID   string
	Count        uint64
	// History holds counted entries, oldest first, capped at ViewHistoryCapacity.
	History []ViewEntry
}

// Record applies one view at now. The view is counted unless an entry for the
// same client IP exists within the dedup window; uncounted views leave the
// record untouched, so a duplicate never extends the suppression window.
func (r *ViewRecord) Record(clientIP string, now time.Time, meta ViewMeta) bool {
	for i := len(r.History) - 1; i >= 0; i-- {
		entry := r.History[i]
		if now.Sub(entry.At) >= ViewDedupWindow {
			break
		}
		if entry.ClientIP == clientIP {
			return false
		}
	}
	r.Count++
	r.History = append(r.History, ViewEntry{
		At:        now,
		ClientIP:  clientIP,
		TimeSpent: meta.TimeSpent,
		Referrer:  meta.Referrer,
	})
	if len(r.History) > ViewHistoryCapacity {
		r.History = r.History[len(r.History)-ViewHistoryCapacity:]
	}
	return true
}

// Recent returns up to n entries, newest first.
func (r *ViewRecord) Recent(n int) []ViewEntry {
	if n > len(r.History) {
		n = len(r.History)
	}
	out := make([]ViewEntry, 0, n)
	for i := len(r.History) - 1; i >= len(r.History)-n; i-- {
		out = append(out, r.History[i])
	}
	return out
}
