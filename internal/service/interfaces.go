package service

import (
	"context"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
)

// CityService defines the interface for city business logic
type CityService interface {
	// CreateCity creates a new city
	CreateCity(ctx context.Context, actor Actor, patch domain.CityPatch) (*domain.City, error)
	// GetCity retrieves a city by ID
	GetCity(ctx context.Context, id string) (*domain.City, error)
	// ListCities lists cities with sorting and pagination
	ListCities(ctx context.Context, req ListRequest) ([]*domain.City, int, error)
	// UpdateCity updates the supplied fields of a city
	UpdateCity(ctx context.Context, actor Actor, id string, patch domain.CityPatch) (*domain.City, error)
	// DeleteCity deletes a city without places
	DeleteCity(ctx context.Context, actor Actor, id string) error
}

// PlaceService defines the interface for place business logic
type PlaceService interface {
	// CreatePlace creates a place hosted by the actor
	CreatePlace(ctx context.Context, actor Actor, patch domain.PlacePatch) (*domain.Place, error)
	// GetPlace retrieves a place by ID
	GetPlace(ctx context.Context, id string) (*domain.Place, error)
	// ListPlaces lists places with filters, sorting and pagination
	ListPlaces(ctx context.Context, filter repository.PlaceFilter, req ListRequest) ([]*domain.Place, int, error)
	// UpdatePlace updates the supplied fields of a place
	UpdatePlace(ctx context.Context, actor Actor, id string, patch domain.PlacePatch) (*domain.Place, error)
	// DeletePlace deletes a place without events
	DeletePlace(ctx context.Context, actor Actor, id string) error
}

// EventListFilter contains the raw filters of an event list request
type EventListFilter struct {
	PlaceID     string
	HostID      string
	FilmWorkID  string
	EarlierThan string
	LaterThan   string
}

// EventService defines the interface for event business logic
type EventService interface {
	// CreateEvent schedules an event at a place hosted by the actor
	CreateEvent(ctx context.Context, actor Actor, placeID string, patch domain.EventPatch) (*domain.Event, error)
	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	// ListEvents lists events with filters, sorting and pagination
	ListEvents(ctx context.Context, filter EventListFilter, req ListRequest) ([]*domain.Event, int, error)
	// UpdateEvent updates the supplied fields of an event
	UpdateEvent(ctx context.Context, actor Actor, id string, patch domain.EventPatch) (*domain.Event, error)
	// DeleteEvent deletes an event without bookings
	DeleteEvent(ctx context.Context, actor Actor, id string) error
}

// BookingService defines the interface for booking business logic
type BookingService interface {
	// CreateBooking books one ticket of an event for the actor
	CreateBooking(ctx context.Context, actor Actor, patch domain.BookingPatch) (*domain.Booking, error)
	// GetBooking retrieves a booking by ID
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	// ListBookings lists bookings with filters, sorting and pagination
	ListBookings(ctx context.Context, filter repository.BookingFilter, req ListRequest) ([]*domain.Booking, int, error)
	// UpdateBooking moves a booking to another event
	UpdateBooking(ctx context.Context, actor Actor, id string, patch domain.BookingPatch) (*domain.Booking, error)
	// DeleteBooking cancels a booking
	DeleteBooking(ctx context.Context, actor Actor, id string) error
}

// BlacklistService defines the interface for block list business logic
type BlacklistService interface {
	// CreateBlockEntry blocks a user from the actor's events
	CreateBlockEntry(ctx context.Context, actor Actor, patch domain.BlockEntryPatch) (*domain.BlockEntry, error)
	// GetBlockEntry retrieves a block entry of the actor
	GetBlockEntry(ctx context.Context, actor Actor, id string) (*domain.BlockEntry, error)
	// ListBlockEntries lists block entries with filters, sorting and pagination
	ListBlockEntries(ctx context.Context, filter repository.BlacklistFilter, req ListRequest) ([]*domain.BlockEntry, int, error)
	// DeleteBlockEntry unblocks a user
	DeleteBlockEntry(ctx context.Context, actor Actor, id string) error
}

// HostService defines the interface for host aggregation
type HostService interface {
	// ListHosts lists hosts with their logins
	ListHosts(ctx context.Context, actor Actor, filter HostListFilter, req ListRequest) ([]domain.Host, int, error)
}

// UserDirectory looks up users in the identity service
type UserDirectory interface {
	GetUser(ctx context.Context, authorization, id string) (*domain.User, error)
}

// FilmCatalog checks film works in the film service
type FilmCatalog interface {
	Exists(ctx context.Context, authorization, filmWorkID string) (bool, error)
}

// LoginResolver resolves user ids to logins in one batch
type LoginResolver interface {
	Logins(ctx context.Context, ids []string) (map[string]string, error)
}
