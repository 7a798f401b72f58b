package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error
type Kind string

const (
	KindMalformedID         Kind = "MALFORMED_ID"
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindHasDependents       Kind = "HAS_DEPENDENTS"
	KindInvalidFormat       Kind = "INVALID_FORMAT"
	KindEventInPast         Kind = "EVENT_IN_PAST"
	KindInvalidRange        Kind = "INVALID_RANGE"
	KindOverlapConflict     Kind = "OVERLAP_CONFLICT"
	KindInvalidCapacity     Kind = "INVALID_CAPACITY"
	KindEventFull           Kind = "EVENT_FULL"
	KindDuplicateBooking    Kind = "DUPLICATE_BOOKING"
	KindHostCannotBook      Kind = "HOST_CANNOT_BOOK"
	KindUserBlacklisted     Kind = "USER_BLACKLISTED"
	KindDuplicateName       Kind = "DUPLICATE_NAME"
	KindInvalidTimezone     Kind = "INVALID_TIMEZONE"
	KindInvalidSortField    Kind = "INVALID_SORT_FIELD"
	KindInvalidReference    Kind = "INVALID_REFERENCE"
	KindAlreadyBlocked      Kind = "ALREADY_BLOCKED"
	KindUnauthenticated     Kind = "UNAUTHENTICATED"
	KindPersistence         Kind = "PERSISTENCE_ERROR"
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
)

// Error is a classified error whose Message is safe to show to clients
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target with a message
// only matches errors carrying that message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// NewError creates a domain error
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a domain error
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Persistence classifies a storage failure. Errors that are already
// domain errors are returned unchanged.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return Wrap(KindPersistence, "database error", err)
}

// KindOf returns the kind of err, or an empty kind for unclassified errors
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// MessageOf returns the client-facing message of a domain error
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// IsClientError reports whether err was caused by the request rather than
// by infrastructure
func IsClientError(err error) bool {
	switch KindOf(err) {
	case "", KindPersistence, KindUpstreamUnavailable:
		return false
	}
	return true
}

// Domain errors
var (
	// Identifier and existence errors
	ErrInvalidUUID     = NewError(KindMalformedID, "uuid invalid")
	ErrObjectNotFound  = NewError(KindNotFound, "object not exist")
	ErrCityNotFound    = NewError(KindNotFound, "city not exist")
	ErrPlaceNotFound   = NewError(KindNotFound, "place not exist")
	ErrEventNotFound   = NewError(KindNotFound, "event not exist")
	ErrHasDependents   = NewError(KindHasDependents, "related obj exist")
	ErrUnauthenticated = NewError(KindUnauthenticated, "unauthorized access")

	// Ownership errors
	ErrNotHost        = NewError(KindForbidden, "Only host can change/delete object")
	ErrNotPlaceHost   = NewError(KindForbidden, "Only place host can add event")
	ErrNotHostOrOwner = NewError(KindForbidden, "Only host or owner can change/delete object")
	ErrNotOwner       = NewError(KindForbidden, "Only owner can change/delete object")
	ErrOnlyHost       = NewError(KindForbidden, "can get only host")

	// Event errors
	ErrEventInPast     = NewError(KindEventInPast, "event_start has to be in future")
	ErrInvalidRange    = NewError(KindInvalidRange, "event_end can not be earlier that event_start")
	ErrPlaceOccupied   = NewError(KindOverlapConflict, "Place is already occupied by another event at this time")
	ErrInvalidCapacity = NewError(KindInvalidCapacity, "max_tickets_count invalid")
	ErrInvalidFilmWork = NewError(KindInvalidReference, "film_work_id invalid")

	// Booking errors
	ErrEventFull        = NewError(KindEventFull, "Event have not available tickets")
	ErrDuplicateBooking = NewError(KindDuplicateBooking, "already exist")
	ErrHostCannotBook   = NewError(KindHostCannotBook, "Host can not take ticket for his own event")
	ErrUserBlacklisted  = NewError(KindUserBlacklisted, "User in block list")
	ErrEventFinished    = NewError(KindEventInPast, "Event already finished")

	// City and place errors
	ErrDuplicateName   = NewError(KindDuplicateName, "already exist")
	ErrInvalidTimezone = NewError(KindInvalidTimezone, "timezone error")

	// Block list errors
	ErrAlreadyBlocked = NewError(KindAlreadyBlocked, "already exist")
	ErrInvalidUser    = NewError(KindInvalidReference, "user_id invalid")

	// Query errors
	ErrInvalidSortField     = NewError(KindInvalidSortField, "sorting fild invalid")
	ErrInvalidSortDirection = NewError(KindInvalidFormat, "sorting direction invalid")
	ErrInvalidPage          = NewError(KindInvalidFormat, "page invalid")

	// Upstream errors
	ErrUserInfo    = NewError(KindUpstreamUnavailable, "get user info error")
	ErrFilmService = NewError(KindUpstreamUnavailable, "get film info error")
	ErrIdentity    = NewError(KindUpstreamUnavailable, "get user error")
)

// InvalidDateError reports a timestamp that does not match layout
func InvalidDateError(layout string) *Error {
	return NewError(KindInvalidFormat, fmt.Sprintf("date invalid, use %s format", layout))
}
