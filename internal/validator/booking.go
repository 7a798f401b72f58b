package validator

import (
	"context"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// DuplicateFinder reports whether a user already booked an event
type DuplicateFinder interface {
	Exists(ctx context.Context, userID, eventID, excludeID string) (bool, error)
}

// RequireNotHost stops hosts from booking their own events
func RequireNotHost(event *domain.Event, userID string) error {
	if event.HostID == userID {
		return domain.ErrHostCannotBook
	}
	return nil
}

// RequireNotStarted rejects bookings for events that already started
func RequireNotStarted(event *domain.Event, now time.Time) error {
	if event.HasStarted(now.UTC()) {
		return domain.ErrEventFinished
	}
	return nil
}

// RequireNoDuplicateBooking allows one booking per user and event.
// excludeID is the booking being updated, empty on create.
func RequireNoDuplicateBooking(ctx context.Context, bookings DuplicateFinder, userID, eventID, excludeID string) error {
	exists, err := bookings.Exists(ctx, userID, eventID, excludeID)
	if err != nil {
		return domain.Persistence(err)
	}
	if exists {
		return domain.ErrDuplicateBooking
	}
	return nil
}
