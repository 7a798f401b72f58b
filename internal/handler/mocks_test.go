package handler

import (
	"context"
	"errors"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/service"
)

var createdAt = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

// MockCityService is a mock implementation of CityService
type MockCityService struct {
	cities    map[string]*domain.City
	err       error
	lastActor service.Actor
	lastList  service.ListRequest
}

func NewMockCityService() *MockCityService {
	return &MockCityService{cities: make(map[string]*domain.City)}
}

func (m *MockCityService) CreateCity(ctx context.Context, actor service.Actor, patch domain.CityPatch) (*domain.City, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	city := &domain.City{ID: "city-1", Name: *patch.Name, Timezone: *patch.Timezone, CreatedAt: createdAt}
	m.cities[city.ID] = city
	return city, nil
}

func (m *MockCityService) GetCity(ctx context.Context, id string) (*domain.City, error) {
	city, ok := m.cities[id]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return city, nil
}

func (m *MockCityService) ListCities(ctx context.Context, req service.ListRequest) ([]*domain.City, int, error) {
	m.lastList = req
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.City
	for _, c := range m.cities {
		out = append(out, c)
	}
	return out, len(out) + 10, nil
}

func (m *MockCityService) UpdateCity(ctx context.Context, actor service.Actor, id string, patch domain.CityPatch) (*domain.City, error) {
	city, ok := m.cities[id]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	if patch.Name != nil {
		city.Name = *patch.Name
	}
	return city, nil
}

func (m *MockCityService) DeleteCity(ctx context.Context, actor service.Actor, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.cities, id)
	return nil
}

// MockEventService is a mock implementation of EventService
type MockEventService struct {
	events     map[string]*domain.Event
	lastFilter service.EventListFilter
	lastPlace  string
}

func NewMockEventService() *MockEventService {
	return &MockEventService{events: make(map[string]*domain.Event)}
}

func (m *MockEventService) CreateEvent(ctx context.Context, actor service.Actor, placeID string, patch domain.EventPatch) (*domain.Event, error) {
	m.lastPlace = placeID
	event := &domain.Event{
		ID:              "event-1",
		PlaceID:         placeID,
		FilmWorkID:      *patch.FilmWorkID,
		EventStart:      createdAt.Add(24 * time.Hour),
		EventEnd:        createdAt.Add(26 * time.Hour),
		MaxTicketsCount: *patch.MaxTicketsCount,
		HostID:          actor.UserID,
		CreatedAt:       createdAt,
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *MockEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return event, nil
}

func (m *MockEventService) ListEvents(ctx context.Context, filter service.EventListFilter, req service.ListRequest) ([]*domain.Event, int, error) {
	m.lastFilter = filter
	var out []*domain.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *MockEventService) UpdateEvent(ctx context.Context, actor service.Actor, id string, patch domain.EventPatch) (*domain.Event, error) {
	return nil, domain.ErrNotHost
}

func (m *MockEventService) DeleteEvent(ctx context.Context, actor service.Actor, id string) error {
	return domain.ErrHasDependents
}

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	bookings   map[string]*domain.Booking
	err        error
	creates    int
	lastFilter repository.BookingFilter
}

func NewMockBookingService() *MockBookingService {
	return &MockBookingService{bookings: make(map[string]*domain.Booking)}
}

func (m *MockBookingService) CreateBooking(ctx context.Context, actor service.Actor, patch domain.BookingPatch) (*domain.Booking, error) {
	m.creates++
	if m.err != nil {
		return nil, m.err
	}
	booking := &domain.Booking{ID: "booking-1", EventID: *patch.EventID, UserID: actor.UserID, CreatedAt: createdAt}
	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return booking, nil
}

func (m *MockBookingService) ListBookings(ctx context.Context, filter repository.BookingFilter, req service.ListRequest) ([]*domain.Booking, int, error) {
	m.lastFilter = filter
	return []*domain.Booking{}, 0, nil
}

func (m *MockBookingService) UpdateBooking(ctx context.Context, actor service.Actor, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	return nil, domain.ErrNotOwner
}

func (m *MockBookingService) DeleteBooking(ctx context.Context, actor service.Actor, id string) error {
	if _, ok := m.bookings[id]; !ok {
		return domain.ErrObjectNotFound
	}
	delete(m.bookings, id)
	return nil
}

// MockPlaceService is a mock implementation of PlaceService
type MockPlaceService struct{}

func (m *MockPlaceService) CreatePlace(ctx context.Context, actor service.Actor, patch domain.PlacePatch) (*domain.Place, error) {
	return &domain.Place{ID: "place-1", Name: *patch.Name, CityID: *patch.CityID, Address: *patch.Address, HostID: actor.UserID, CreatedAt: createdAt}, nil
}

func (m *MockPlaceService) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	return nil, domain.ErrInvalidUUID
}

func (m *MockPlaceService) ListPlaces(ctx context.Context, filter repository.PlaceFilter, req service.ListRequest) ([]*domain.Place, int, error) {
	return nil, 0, domain.ErrCityNotFound
}

func (m *MockPlaceService) UpdatePlace(ctx context.Context, actor service.Actor, id string, patch domain.PlacePatch) (*domain.Place, error) {
	return nil, domain.ErrNotHost
}

func (m *MockPlaceService) DeletePlace(ctx context.Context, actor service.Actor, id string) error {
	return nil
}

// MockBlacklistService is a mock implementation of BlacklistService
type MockBlacklistService struct {
	lastFilter repository.BlacklistFilter
}

func (m *MockBlacklistService) CreateBlockEntry(ctx context.Context, actor service.Actor, patch domain.BlockEntryPatch) (*domain.BlockEntry, error) {
	return &domain.BlockEntry{ID: "entry-1", HostID: actor.UserID, UserID: *patch.UserID, CreatedAt: createdAt}, nil
}

func (m *MockBlacklistService) GetBlockEntry(ctx context.Context, actor service.Actor, id string) (*domain.BlockEntry, error) {
	return nil, domain.ErrOnlyHost
}

func (m *MockBlacklistService) ListBlockEntries(ctx context.Context, filter repository.BlacklistFilter, req service.ListRequest) ([]*domain.BlockEntry, int, error) {
	m.lastFilter = filter
	return []*domain.BlockEntry{}, 0, nil
}

func (m *MockBlacklistService) DeleteBlockEntry(ctx context.Context, actor service.Actor, id string) error {
	return nil
}

// MockHostService is a mock implementation of HostService
type MockHostService struct {
	hosts      []domain.Host
	err        error
	lastFilter service.HostListFilter
	lastReq    service.ListRequest
	lastActor  service.Actor
}

func (m *MockHostService) ListHosts(ctx context.Context, actor service.Actor, filter service.HostListFilter, req service.ListRequest) ([]domain.Host, int, error) {
	m.lastFilter, m.lastReq, m.lastActor = filter, req, actor
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.hosts, len(m.hosts), nil
}

// mockVerifier accepts every token and knows the superusers
type mockVerifier struct {
	superusers map[string]bool
}

func (m *mockVerifier) VerifyToken(ctx context.Context, authorization string) error {
	return nil
}

func (m *mockVerifier) IsSuperuser(ctx context.Context, authorization, userID string) (bool, error) {
	return m.superusers[userID], nil
}

// mockChecker is a HealthChecker with a fixed result
type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(ctx context.Context) error {
	return m.err
}

var errBoom = errors.New("boom")
