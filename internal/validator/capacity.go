package validator

import (
	"context"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// BookingCounter counts the bookings of an event
type BookingCounter interface {
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

// RequireValidCapacity rejects non-positive ticket counts
func RequireValidCapacity(maxTickets int) error {
	if maxTickets <= 0 {
		return domain.ErrInvalidCapacity
	}
	return nil
}

// RequireAvailableTicket fails when the event is sold out
func RequireAvailableTicket(ctx context.Context, bookings BookingCounter, event *domain.Event) error {
	count, err := bookings.CountByEvent(ctx, event.ID)
	if err != nil {
		return domain.Persistence(err)
	}
	if count >= event.MaxTicketsCount {
		return domain.ErrEventFull
	}
	return nil
}
