package domain

import "time"

// HistoryEntry is one step of the back stack: the route that was showing and
// when the user left it.
type HistoryEntry struct {
	Route     Route
	Timestamp time.Time
}
