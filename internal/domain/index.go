package domain

import "time"

// SyncStats holds statistics from an index sync
type SyncStats struct {
	Added    int
	Updated  int
	Deleted  int
	Full     bool // the index was rebuilt from scratch
	Duration time.Duration
}
