package domain

import "time"

// Event is a screening of a film at a place
type Event struct {
	ID              string    `json:"id"`
	PlaceID         string    `json:"place_id"`
	FilmWorkID      string    `json:"film_work_id"`
	EventStart      time.Time `json:"event_start"`
	EventEnd        time.Time `json:"event_end"`
	MaxTicketsCount int       `json:"max_tickets_count"`
	HostID          string    `json:"host_id"`
	CreatedAt       time.Time `json:"created_at"`

	// BookedTickets is derived from the booking table on read
	BookedTickets int `json:"-"`
}

// AvailableTickets returns how many tickets can still be booked
func (e *Event) AvailableTickets() int {
	available := e.MaxTicketsCount - e.BookedTickets
	if available < 0 {
		return 0
	}
	return available
}

// HasStarted reports whether the event has started at now
func (e *Event) HasStarted(now time.Time) bool {
	return !e.EventStart.After(now)
}

// EventPatch holds the supplied fields of an event create or update.
// Timestamps stay raw because they are parsed in the place's city timezone.
type EventPatch struct {
	FilmWorkID      *string
	EventStart      *string
	EventEnd        *string
	MaxTicketsCount *int
}

// HasSchedule reports whether either timestamp was supplied
func (p EventPatch) HasSchedule() bool {
	return p.EventStart != nil || p.EventEnd != nil
}
