package dto

import "github.com/prohmpiriya/cinema-booking/internal/domain"

// CreateEventRequest represents the request to create a new event.
// event_start and event_end are wall-clock times in the city of the place.
type CreateEventRequest struct {
	PlaceID         *string `json:"place_id" binding:"required"`
	FilmWorkID      *string `json:"film_work_id" binding:"required"`
	EventStart      *string `json:"event_start" binding:"required"`
	EventEnd        *string `json:"event_end" binding:"required"`
	MaxTicketsCount *int    `json:"max_tickets_count" binding:"required"`
}

// ToPatch converts the request into an event patch. The place is not
// patchable and is passed to the service separately.
func (r *CreateEventRequest) ToPatch() domain.EventPatch {
	return domain.EventPatch{
		FilmWorkID:      r.FilmWorkID,
		EventStart:      r.EventStart,
		EventEnd:        r.EventEnd,
		MaxTicketsCount: r.MaxTicketsCount,
	}
}

// UpdateEventRequest represents the request to update an event
type UpdateEventRequest struct {
	FilmWorkID      *string `json:"film_work_id"`
	EventStart      *string `json:"event_start"`
	EventEnd        *string `json:"event_end"`
	MaxTicketsCount *int    `json:"max_tickets_count"`
}

// ToPatch converts the request into an event patch
func (r *UpdateEventRequest) ToPatch() domain.EventPatch {
	return domain.EventPatch{
		FilmWorkID:      r.FilmWorkID,
		EventStart:      r.EventStart,
		EventEnd:        r.EventEnd,
		MaxTicketsCount: r.MaxTicketsCount,
	}
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID                       string `json:"id"`
	PlaceID                  string `json:"place_id"`
	FilmWorkID               string `json:"film_work_id"`
	EventStart               string `json:"event_start"`
	EventEnd                 string `json:"event_end"`
	MaxTicketsCount          int    `json:"max_tickets_count"`
	NumberOfAvailableTickets int    `json:"number_of_available_tickets"`
	HostID                   string `json:"host_id"`
	CreatedAt                string `json:"created_at"`
}

// ToEventResponse converts an event to its response
func ToEventResponse(event *domain.Event) *EventResponse {
	return &EventResponse{
		ID:                       event.ID,
		PlaceID:                  event.PlaceID,
		FilmWorkID:               event.FilmWorkID,
		EventStart:               formatTime(event.EventStart),
		EventEnd:                 formatTime(event.EventEnd),
		MaxTicketsCount:          event.MaxTicketsCount,
		NumberOfAvailableTickets: event.AvailableTickets(),
		HostID:                   event.HostID,
		CreatedAt:                formatTime(event.CreatedAt),
	}
}

// ToEventResponses converts a list of events
func ToEventResponses(events []*domain.Event) []*EventResponse {
	out := make([]*EventResponse, len(events))
	for i, event := range events {
		out[i] = ToEventResponse(event)
	}
	return out
}
