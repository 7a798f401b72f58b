package dto

import "github.com/prohmpiriya/cinema-booking/internal/domain"

// CreateBookingRequest represents the request to book a ticket
type CreateBookingRequest struct {
	EventID *string `json:"event_id" binding:"required"`
}

// ToPatch converts the request into a booking patch
func (r *CreateBookingRequest) ToPatch() domain.BookingPatch {
	return domain.BookingPatch{EventID: r.EventID}
}

// UpdateBookingRequest moves a booking to another event
type UpdateBookingRequest struct {
	EventID *string `json:"event_id"`
}

// ToPatch converts the request into a booking patch
func (r *UpdateBookingRequest) ToPatch() domain.BookingPatch {
	return domain.BookingPatch{EventID: r.EventID}
}

type BookingResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

func ToBookingResponse(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        booking.ID,
		EventID:   booking.EventID,
		UserID:    booking.UserID,
		CreatedAt: formatTime(booking.CreatedAt),
	}
}

func ToBookingResponses(bookings []*domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, len(bookings))
	for i, booking := range bookings {
		out[i] = ToBookingResponse(booking)
	}
	return out
}
