package domain

import "time"

// BlockEntry forbids a user from booking any event of a host
type BlockEntry struct {
	ID        string    `json:"id"`
	HostID    string    `json:"host_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BlockEntryPatch holds the supplied fields of a block entry create
type BlockEntryPatch struct {
	UserID *string
}
