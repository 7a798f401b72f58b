package domain

import "time"

// Booking is one ticket taken by a user for an event
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingPatch holds the supplied fields of a booking create or update
type BookingPatch struct {
	EventID *string
}
