package repository

import (
	"context"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/query"
)

// CityRepository defines the interface for city data access
type CityRepository interface {
	// Create creates a new city
	Create(ctx context.Context, city *domain.City) error
	// GetByID retrieves a city by ID, nil when absent
	GetByID(ctx context.Context, id string) (*domain.City, error)
	// Update updates a city
	Update(ctx context.Context, city *domain.City) error
	// Delete deletes a city by ID
	Delete(ctx context.Context, id string) error
	// List lists cities with sorting and pagination
	List(ctx context.Context, params query.Params) ([]*domain.City, int, error)
	// NameExists checks if another city already uses name
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	// HasPlaces checks if any place references the city
	HasPlaces(ctx context.Context, id string) (bool, error)
}

// PlaceFilter contains filter options for listing places
type PlaceFilter struct {
	CityID string
	HostID string
}

// PlaceRepository defines the interface for place data access
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	Update(ctx context.Context, place *domain.Place) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PlaceFilter, params query.Params) ([]*domain.Place, int, error)
	// NameExists checks if another place already uses name
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	// AddressExists checks if another place already uses address
	AddressExists(ctx context.Context, address, excludeID string) (bool, error)
	// HasEvents checks if any event takes place at the place
	HasEvents(ctx context.Context, id string) (bool, error)
	// ListHostIDs returns the host of every place, optionally within one city
	ListHostIDs(ctx context.Context, cityID string) ([]string, error)
}

// EventFilter contains filter options for listing events
type EventFilter struct {
	PlaceID     string
	HostID      string
	FilmWorkID  string
	EarlierThan *time.Time
	LaterThan   *time.Time
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event with its booked ticket count
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// GetByIDForUpdate locks the event row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EventFilter, params query.Params) ([]*domain.Event, int, error)
	// HasOverlap checks if another event at the place intersects [start, end)
	HasOverlap(ctx context.Context, placeID string, start, end time.Time, excludeID string) (bool, error)
}

// BookingFilter contains filter options for listing bookings
type BookingFilter struct {
	EventID string
	UserID  string
	// HostID matches bookings of events hosted by this user
	HostID string
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BookingFilter, params query.Params) ([]*domain.Booking, int, error)
	// CountByEvent counts the bookings of an event
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// Exists checks if the user already booked the event, ignoring excludeID
	Exists(ctx context.Context, userID, eventID, excludeID string) (bool, error)
	// ListHostIDsByUser returns the hosts of events the user booked
	ListHostIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// BlacklistFilter contains filter options for listing block entries
type BlacklistFilter struct {
	HostID string
}

// BlacklistRepository defines the interface for block entry data access
type BlacklistRepository interface {
	Create(ctx context.Context, entry *domain.BlockEntry) error
	GetByID(ctx context.Context, id string) (*domain.BlockEntry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BlacklistFilter, params query.Params) ([]*domain.BlockEntry, int, error)
	// Exists checks if the host blocked the user
	Exists(ctx context.Context, hostID, userID string) (bool, error)
}
