package order

import (
	"sort"
	"time"
)

// initialEntryLead is how far before createdAt the first Pending entry is
// stamped.
const initialEntryLead = time.Minute

// NewHistory is the history of a freshly placed order.
func NewHistory(createdAt time.Time) []StatusHistoryEntry {
	return []StatusHistoryEntry{{
		Status:    StatusPending,
		Timestamp: createdAt.Add(-initialEntryLead),
		Notes:     "Order placed",
	}}
}

// AppendStatus adds a history entry stamped at, keeps the history sorted by
// timestamp and sets the order's status to the new value even when the
// entry lands before later ones. at defaults to now.
func AppendStatus(o *Order, status Status, at time.Time, notes string, now time.Time) {
	if at.IsZero() {
		at = now
	}
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    status,
		Timestamp: at,
		Notes:     notes,
	})
	SortHistory(o.StatusHistory)
	o.Status = status
	o.UpdatedAt = now
}

// SortHistory orders entries ascending by timestamp. Entries with equal
// timestamps keep their append order.
func SortHistory(h []StatusHistoryEntry) {
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].Timestamp.Before(h[j].Timestamp)
	})
}

// LatestHistoryStatus is the status of the chronologically last entry.
func LatestHistoryStatus(o Order) (Status, bool) {
	if len(o.StatusHistory) == 0 {
		return "", false
	}
	return o.StatusHistory[len(o.StatusHistory)-1].Status, true
}

// StatusDiverged reports whether the order's status differs from its
// history tail, which happens after a backdated append.
func StatusDiverged(o Order) bool {
	latest, ok := LatestHistoryStatus(o)
	return ok && latest != o.Status
}
