package domain

import "time"

// SyncStatus describes how the in-memory ledger relates to what was last persisted.
// PendingSync is true while at least one save is in flight. LastError holds the
// failure of the most recent completed load or save, nil once a later one succeeds.
type SyncStatus struct {
	Loaded       bool
	PendingSync  bool
	LastError    error
	LastSyncedAt time.Time
}

// Diverged reports whether memory may differ from storage after a failed save.
func (s SyncStatus) Diverged() bool {
	return s.LastError != nil
}
