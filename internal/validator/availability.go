package validator

import (
	"context"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// DefaultDateLayout is the layout event timestamps are submitted in
const DefaultDateLayout = "2006-01-02 15:04"

// OverlapFinder finds events intersecting a window at a place
type OverlapFinder interface {
	HasOverlap(ctx context.Context, placeID string, start, end time.Time, excludeID string) (bool, error)
}

// Schedule validates event windows against the clock and the other events at a place
type Schedule struct {
	events OverlapFinder
	layout string
	now    func() time.Time
}

// NewSchedule creates a schedule validator. An empty layout uses DefaultDateLayout.
func NewSchedule(events OverlapFinder, layout string, now func() time.Time) *Schedule {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if now == nil {
		now = time.Now
	}
	return &Schedule{events: events, layout: layout, now: now}
}

// Format renders t in loc with the submission layout
func (s *Schedule) Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(s.layout)
}

// Validate parses rawStart and rawEnd as wall-clock times in loc, checks the
// window is in the future, ordered and free at the place, and returns it in UTC.
// excludeID is the event being updated, empty on create.
func (s *Schedule) Validate(ctx context.Context, placeID, rawStart, rawEnd string, loc *time.Location, excludeID string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(s.layout, rawStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.InvalidDateError(s.layout)
	}
	end, err := time.ParseInLocation(s.layout, rawEnd, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.InvalidDateError(s.layout)
	}

	if start.Before(s.now().In(loc)) {
		return time.Time{}, time.Time{}, domain.ErrEventInPast
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidRange
	}

	start, end = start.UTC(), end.UTC()
	overlap, err := s.events.HasOverlap(ctx, placeID, start, end, excludeID)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Persistence(err)
	}
	if overlap {
		return time.Time{}, time.Time{}, domain.ErrPlaceOccupied
	}

	return start, end, nil
}
