package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/query"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
)

// memStore backs all mock repositories so that dependency checks see each other's rows
type memStore struct {
	mu       sync.Mutex
	cities   map[string]*domain.City
	places   map[string]*domain.Place
	events   map[string]*domain.Event
	bookings map[string]*domain.Booking
	entries  map[string]*domain.BlockEntry
	now      time.Time
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		cities:   make(map[string]*domain.City),
		places:   make(map[string]*domain.Place),
		events:   make(map[string]*domain.Event),
		bookings: make(map[string]*domain.Booking),
		entries:  make(map[string]*domain.BlockEntry),
		now:      time.Date(2029, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) lock() func() {
	m.mu.Lock()
	return m.mu.Unlock
}

func page[T any](items []*T, p query.Page) ([]*T, int) {
	total := len(items)
	start := p.Offset()
	if start >= total {
		return []*T{}, total
	}
	end := start + p.Size
	if end > total {
		end = total
	}
	return items[start:end], total
}

// fakeTx runs fn without a transaction
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// MockCityRepository is a mock implementation of CityRepository
type MockCityRepository struct{ *memStore }

func (m *MockCityRepository) Create(ctx context.Context, city *domain.City) error {
	defer m.lock()()
	if m.failWith != nil {
		return m.failWith
	}
	city.CreatedAt = m.now
	c := *city
	m.cities[city.ID] = &c
	return nil
}

func (m *MockCityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	defer m.lock()()
	if m.failWith != nil {
		return nil, m.failWith
	}
	c, ok := m.cities[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MockCityRepository) Update(ctx context.Context, city *domain.City) error {
	defer m.lock()()
	c := *city
	m.cities[city.ID] = &c
	return nil
}

func (m *MockCityRepository) Delete(ctx context.Context, id string) error {
	defer m.lock()()
	delete(m.cities, id)
	return nil
}

func (m *MockCityRepository) List(ctx context.Context, params query.Params) ([]*domain.City, int, error) {
	defer m.lock()()
	var out []*domain.City
	for _, c := range m.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	items, total := page(out, params.Page)
	return items, total, nil
}

func (m *MockCityRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	defer m.lock()()
	for _, c := range m.cities {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCityRepository) HasPlaces(ctx context.Context, id string) (bool, error) {
	defer m.lock()()
	for _, p := range m.places {
		if p.CityID == id {
			return true, nil
		}
	}
	return false, nil
}

// MockPlaceRepository is a mock implementation of PlaceRepository
type MockPlaceRepository struct{ *memStore }

func (m *MockPlaceRepository) Create(ctx context.Context, place *domain.Place) error {
	defer m.lock()()
	place.CreatedAt = m.now
	p := *place
	m.places[place.ID] = &p
	return nil
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	defer m.lock()()
	p, ok := m.places[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *domain.Place) error {
	defer m.lock()()
	p := *place
	m.places[place.ID] = &p
	return nil
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id string) error {
	defer m.lock()()
	delete(m.places, id)
	return nil
}

func (m *MockPlaceRepository) List(ctx context.Context, filter repository.PlaceFilter, params query.Params) ([]*domain.Place, int, error) {
	defer m.lock()()
	var out []*domain.Place
	for _, p := range m.places {
		if filter.CityID != "" && p.CityID != filter.CityID {
			continue
		}
		if filter.HostID != "" && p.HostID != filter.HostID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	items, total := page(out, params.Page)
	return items, total, nil
}

func (m *MockPlaceRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	defer m.lock()()
	for _, p := range m.places {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPlaceRepository) AddressExists(ctx context.Context, address, excludeID string) (bool, error) {
	defer m.lock()()
	for _, p := range m.places {
		if p.Address == address && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPlaceRepository) HasEvents(ctx context.Context, id string) (bool, error) {
	defer m.lock()()
	for _, e := range m.events {
		if e.PlaceID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPlaceRepository) ListHostIDs(ctx context.Context, cityID string) ([]string, error) {
	defer m.lock()()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var ids []string
	for _, p := range m.places {
		if cityID == "" || p.CityID == cityID {
			ids = append(ids, p.HostID)
		}
	}
	return ids, nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	*memStore
	lockedIDs []string
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	defer m.lock()()
	event.CreatedAt = m.now
	e := *event
	m.events[event.ID] = &e
	return nil
}

func (m *MockEventRepository) get(id string) *domain.Event {
	e, ok := m.events[id]
	if !ok {
		return nil
	}
	cp := *e
	cp.BookedTickets = 0
	for _, b := range m.bookings {
		if b.EventID == id {
			cp.BookedTickets++
		}
	}
	return &cp
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	defer m.lock()()
	return m.get(id), nil
}

func (m *MockEventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	defer m.lock()()
	m.lockedIDs = append(m.lockedIDs, id)
	return m.get(id), nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	defer m.lock()()
	e := *event
	m.events[event.ID] = &e
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	defer m.lock()()
	delete(m.events, id)
	return nil
}

func (m *MockEventRepository) List(ctx context.Context, filter repository.EventFilter, params query.Params) ([]*domain.Event, int, error) {
	defer m.lock()()
	var out []*domain.Event
	for id, e := range m.events {
		if filter.PlaceID != "" && e.PlaceID != filter.PlaceID {
			continue
		}
		if filter.HostID != "" && e.HostID != filter.HostID {
			continue
		}
		if filter.EarlierThan != nil && !e.EventStart.Before(*filter.EarlierThan) {
			continue
		}
		if filter.LaterThan != nil && !e.EventStart.After(*filter.LaterThan) {
			continue
		}
		out = append(out, m.get(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventStart.Before(out[j].EventStart) })
	items, total := page(out, params.Page)
	return items, total, nil
}

func (m *MockEventRepository) HasOverlap(ctx context.Context, placeID string, start, end time.Time, excludeID string) (bool, error) {
	defer m.lock()()
	for _, e := range m.events {
		if e.PlaceID == placeID && e.ID != excludeID && e.EventStart.Before(end) && e.EventEnd.After(start) {
			return true, nil
		}
	}
	return false, nil
}

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct{ *memStore }

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	defer m.lock()()
	booking.CreatedAt = m.now
	b := *booking
	m.bookings[booking.ID] = &b
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	defer m.lock()()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	defer m.lock()()
	b := *booking
	m.bookings[booking.ID] = &b
	return nil
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	defer m.lock()()
	delete(m.bookings, id)
	return nil
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingFilter, params query.Params) ([]*domain.Booking, int, error) {
	defer m.lock()()
	var out []*domain.Booking
	for _, b := range m.bookings {
		if filter.EventID != "" && b.EventID != filter.EventID {
			continue
		}
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.HostID != "" {
			e, ok := m.events[b.EventID]
			if !ok || e.HostID != filter.HostID {
				continue
			}
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, params.Page)
	return items, total, nil
}

func (m *MockBookingRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	defer m.lock()()
	n := 0
	for _, b := range m.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *MockBookingRepository) Exists(ctx context.Context, userID, eventID, excludeID string) (bool, error) {
	defer m.lock()()
	for _, b := range m.bookings {
		if b.UserID == userID && b.EventID == eventID && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBookingRepository) ListHostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	defer m.lock()()
	var ids []string
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		if e, ok := m.events[b.EventID]; ok {
			ids = append(ids, e.HostID)
		}
	}
	return ids, nil
}

// MockBlacklistRepository is a mock implementation of BlacklistRepository
type MockBlacklistRepository struct{ *memStore }

func (m *MockBlacklistRepository) Create(ctx context.Context, entry *domain.BlockEntry) error {
	defer m.lock()()
	entry.CreatedAt = m.now
	e := *entry
	m.entries[entry.ID] = &e
	return nil
}

func (m *MockBlacklistRepository) GetByID(ctx context.Context, id string) (*domain.BlockEntry, error) {
	defer m.lock()()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *MockBlacklistRepository) Delete(ctx context.Context, id string) error {
	defer m.lock()()
	delete(m.entries, id)
	return nil
}

func (m *MockBlacklistRepository) List(ctx context.Context, filter repository.BlacklistFilter, params query.Params) ([]*domain.BlockEntry, int, error) {
	defer m.lock()()
	var out []*domain.BlockEntry
	for _, e := range m.entries {
		if filter.HostID != "" && e.HostID != filter.HostID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, params.Page)
	return items, total, nil
}

func (m *MockBlacklistRepository) Exists(ctx context.Context, hostID, userID string) (bool, error) {
	defer m.lock()()
	for _, e := range m.entries {
		if e.HostID == hostID && e.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// mockFilms is a mock FilmCatalog
type mockFilms struct {
	known map[string]bool
	err   error
}

func (m *mockFilms) Exists(ctx context.Context, authorization, filmWorkID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.known[filmWorkID], nil
}

// mockUsers is a mock UserDirectory
type mockUsers struct {
	users map[string]*domain.User
	err   error
}

func (m *mockUsers) GetUser(ctx context.Context, authorization, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[id], nil
}

// mockLogins is a mock LoginResolver
type mockLogins struct {
	logins map[string]string
	err    error
	calls  [][]string
}

func (m *mockLogins) Logins(ctx context.Context, ids []string) (map[string]string, error) {
	m.calls = append(m.calls, ids)
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]string)
	for _, id := range ids {
		if login, ok := m.logins[id]; ok {
			out[id] = login
		}
	}
	return out, nil
}

// fixture wires every service to one memStore
type fixture struct {
	store     *memStore
	events    *MockEventRepository
	tx        *fakeTx
	films     *mockFilms
	users     *mockUsers
	logins    *mockLogins
	cities    CityService
	places    PlaceService
	eventSvc  EventService
	bookings  BookingService
	blacklist BlacklistService
	hosts     HostService
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:  store,
		events: &MockEventRepository{memStore: store},
		tx:     &fakeTx{},
		films:  &mockFilms{known: map[string]bool{}},
		users:  &mockUsers{users: map[string]*domain.User{}},
		logins: &mockLogins{logins: map[string]string{}},
	}

	cityRepo := &MockCityRepository{store}
	placeRepo := &MockPlaceRepository{store}
	bookingRepo := &MockBookingRepository{store}
	blacklistRepo := &MockBlacklistRepository{store}
	settings := Settings{Now: func() time.Time { return store.now }}

	f.cities = NewCityService(cityRepo, f.tx, settings, nil)
	f.places = NewPlaceService(placeRepo, cityRepo, f.tx, settings, nil)
	f.eventSvc = NewEventService(f.events, placeRepo, cityRepo, bookingRepo, f.films, f.tx, settings, nil)
	f.bookings = NewBookingService(bookingRepo, f.events, blacklistRepo, f.tx, settings, nil)
	f.blacklist = NewBlacklistService(blacklistRepo, f.users, f.tx, settings, nil)
	f.hosts = NewHostService(placeRepo, cityRepo, bookingRepo, f.logins, settings, nil)
	return f
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
