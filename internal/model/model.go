package model

import "time"

// Item is one entry in the list. IDs are assigned by the store, start at 1,
// and are never reused for the lifetime of the process, deletions included.
type Item struct {
	ID        int64
	Title     string
	Completed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
