package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID    = "00000000-0000-0000-0000-0000000000a1"
	hostID     = "00000000-0000-0000-0000-0000000000b1"
	otherHost  = "00000000-0000-0000-0000-0000000000b2"
	viewerID   = "00000000-0000-0000-0000-0000000000c1"
	secondUser = "00000000-0000-0000-0000-0000000000c2"
	filmID     = "00000000-0000-0000-0000-0000000000f1"
	missingID  = "00000000-0000-0000-0000-0000000000ff"
)

var (
	admin  = Actor{UserID: adminID, Authorization: "Bearer admin", IsSuperuser: true}
	host   = Actor{UserID: hostID, Authorization: "Bearer host"}
	viewer = Actor{UserID: viewerID, Authorization: "Bearer viewer"}
)

// seedLouvre creates Paris, the Louvre hosted by host and a 21:00-22:00 Paris time screening
func seedLouvre(t *testing.T, f *fixture, maxTickets int) (*domain.City, *domain.Place, *domain.Event) {
	t.Helper()
	ctx := context.Background()
	f.films.known[filmID] = true
	f.films.known["tt0111161"] = true

	city, err := f.cities.CreateCity(ctx, admin, domain.CityPatch{Name: strPtr("Paris"), Timezone: strPtr("Europe/Paris")})
	require.NoError(t, err)

	place, err := f.places.CreatePlace(ctx, host, domain.PlacePatch{
		Name:    strPtr("Louvre"),
		CityID:  strPtr(city.ID),
		Address: strPtr("Rue de Rivoli"),
	})
	require.NoError(t, err)

	event, err := f.eventSvc.CreateEvent(ctx, host, place.ID, domain.EventPatch{
		FilmWorkID:      strPtr(filmID),
		EventStart:      strPtr("2030-01-01 21:00"),
		EventEnd:        strPtr("2030-01-01 22:00"),
		MaxTicketsCount: intPtr(maxTickets),
	})
	require.NoError(t, err)
	return city, place, event
}

func TestEventService_CreateInCityTimezone(t *testing.T) {
	f := newFixture()
	_, place, event := seedLouvre(t, f, 2)

	assert.Equal(t, place.ID, event.PlaceID)
	assert.Equal(t, hostID, event.HostID)
	assert.Equal(t, time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC), event.EventStart)
	assert.Equal(t, time.Date(2030, 1, 1, 21, 0, 0, 0, time.UTC), event.EventEnd)
	assert.Equal(t, f.store.now, event.CreatedAt)
	assert.Equal(t, 2, event.AvailableTickets())
}

func TestEventService_CreateRules(t *testing.T) {
	f := newFixture()
	_, place, _ := seedLouvre(t, f, 2)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   Actor
		placeID string
		patch   domain.EventPatch
		wantErr *domain.Error
	}{
		{
			name:    "overlapping screening",
			actor:   host,
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2030-01-01 21:30"), EventEnd: strPtr("2030-01-01 23:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrPlaceOccupied,
		},
		{
			name:    "not the place host",
			actor:   Actor{UserID: otherHost},
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2030-01-02 21:00"), EventEnd: strPtr("2030-01-02 22:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrNotPlaceHost,
		},
		{
			name:    "in the past",
			actor:   host,
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2020-01-01 21:00"), EventEnd: strPtr("2020-01-01 22:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrEventInPast,
		},
		{
			name:    "end before start",
			actor:   host,
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2030-01-03 22:00"), EventEnd: strPtr("2030-01-03 21:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "zero capacity",
			actor:   host,
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2030-01-04 21:00"), EventEnd: strPtr("2030-01-04 22:00"), MaxTicketsCount: intPtr(0)},
			wantErr: domain.ErrInvalidCapacity,
		},
		{
			name:    "unknown film",
			actor:   host,
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(missingID), EventStart: strPtr("2030-01-05 21:00"), EventEnd: strPtr("2030-01-05 22:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrInvalidFilmWork,
		},
		{
			name:    "malformed film id",
			actor:   host,
			placeID: place.ID,
			patch:   domain.EventPatch{FilmWorkID: strPtr("tt0111161"), EventStart: strPtr("2030-01-05 21:00"), EventEnd: strPtr("2030-01-05 22:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrInvalidUUID,
		},
		{
			name:    "unknown place",
			actor:   host,
			placeID: missingID,
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2030-01-05 21:00"), EventEnd: strPtr("2030-01-05 22:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrPlaceNotFound,
		},
		{
			name:    "malformed place id",
			actor:   host,
			placeID: "louvre",
			patch:   domain.EventPatch{FilmWorkID: strPtr(filmID), EventStart: strPtr("2030-01-05 21:00"), EventEnd: strPtr("2030-01-05 22:00"), MaxTicketsCount: intPtr(5)},
			wantErr: domain.ErrInvalidUUID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.eventSvc.CreateEvent(ctx, tt.actor, tt.placeID, tt.patch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("adjacent screening", func(t *testing.T) {
		_, err := f.eventSvc.CreateEvent(ctx, host, place.ID, domain.EventPatch{
			FilmWorkID:      strPtr(filmID),
			EventStart:      strPtr("2030-01-01 22:00"),
			EventEnd:        strPtr("2030-01-01 23:00"),
			MaxTicketsCount: intPtr(5),
		})
		assert.NoError(t, err)
	})
}

func TestEventService_CreateMalformedDate(t *testing.T) {
	f := newFixture()
	_, place, _ := seedLouvre(t, f, 2)

	_, err := f.eventSvc.CreateEvent(context.Background(), host, place.ID, domain.EventPatch{
		FilmWorkID:      strPtr(filmID),
		EventStart:      strPtr("01/01/2030 21:00"),
		EventEnd:        strPtr("2030-01-01 22:00"),
		MaxTicketsCount: intPtr(5),
	})
	assert.Equal(t, domain.KindInvalidFormat, domain.KindOf(err))
	assert.Equal(t, "date invalid, use 2006-01-02 15:04 format", domain.MessageOf(err))
}

func TestEventService_FilmServiceDown(t *testing.T) {
	f := newFixture()
	_, place, _ := seedLouvre(t, f, 2)
	f.films.err = domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrFilmService.Message, errors.New("connection refused"))

	_, err := f.eventSvc.CreateEvent(context.Background(), host, place.ID, domain.EventPatch{
		FilmWorkID:      strPtr(filmID),
		EventStart:      strPtr("2030-02-01 21:00"),
		EventEnd:        strPtr("2030-02-01 22:00"),
		MaxTicketsCount: intPtr(5),
	})
	assert.Equal(t, domain.KindUpstreamUnavailable, domain.KindOf(err))
}

func TestEventService_Update(t *testing.T) {
	f := newFixture()
	_, place, event := seedLouvre(t, f, 2)
	ctx := context.Background()

	t.Run("only end moves, start stays in city time", func(t *testing.T) {
		updated, err := f.eventSvc.UpdateEvent(ctx, host, event.ID, domain.EventPatch{EventEnd: strPtr("2030-01-01 22:30")})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC), updated.EventStart)
		assert.Equal(t, time.Date(2030, 1, 1, 21, 30, 0, 0, time.UTC), updated.EventEnd)
		assert.Equal(t, place.ID, updated.PlaceID)
	})

	t.Run("capacity only", func(t *testing.T) {
		updated, err := f.eventSvc.UpdateEvent(ctx, host, event.ID, domain.EventPatch{MaxTicketsCount: intPtr(10)})
		require.NoError(t, err)
		assert.Equal(t, 10, updated.MaxTicketsCount)
	})

	t.Run("not the host", func(t *testing.T) {
		_, err := f.eventSvc.UpdateEvent(ctx, viewer, event.ID, domain.EventPatch{MaxTicketsCount: intPtr(10)})
		assert.ErrorIs(t, err, domain.ErrNotHost)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := f.eventSvc.UpdateEvent(ctx, host, missingID, domain.EventPatch{})
		assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	})

	t.Run("overlap with another screening", func(t *testing.T) {
		other, err := f.eventSvc.CreateEvent(ctx, host, place.ID, domain.EventPatch{
			FilmWorkID:      strPtr(filmID),
			EventStart:      strPtr("2030-01-01 23:00"),
			EventEnd:        strPtr("2030-01-02 01:00"),
			MaxTicketsCount: intPtr(5),
		})
		require.NoError(t, err)

		_, err = f.eventSvc.UpdateEvent(ctx, host, other.ID, domain.EventPatch{EventStart: strPtr("2030-01-01 22:00")})
		assert.ErrorIs(t, err, domain.ErrPlaceOccupied)
	})
}

func TestEventService_DeleteWithBookings(t *testing.T) {
	f := newFixture()
	_, _, event := seedLouvre(t, f, 2)
	ctx := context.Background()

	_, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)

	err = f.eventSvc.DeleteEvent(ctx, host, event.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
}

func TestEventService_ListFilters(t *testing.T) {
	f := newFixture()
	_, place, _ := seedLouvre(t, f, 2)
	ctx := context.Background()

	events, total, err := f.eventSvc.ListEvents(ctx, EventListFilter{PlaceID: place.ID, LaterThan: "2030-01-01 00:00:00"}, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, events, 1)

	_, _, err = f.eventSvc.ListEvents(ctx, EventListFilter{EarlierThan: "2030-01-01"}, ListRequest{})
	assert.Equal(t, "date invalid, use 2006-01-02 15:04:05 format", domain.MessageOf(err))

	_, _, err = f.eventSvc.ListEvents(ctx, EventListFilter{PlaceID: missingID}, ListRequest{})
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)

	_, _, err = f.eventSvc.ListEvents(ctx, EventListFilter{}, ListRequest{Sorting: []string{"price"}})
	assert.ErrorIs(t, err, domain.ErrInvalidSortField)
}

func TestBookingService_LastTicket(t *testing.T) {
	f := newFixture()
	_, _, event := seedLouvre(t, f, 1)
	ctx := context.Background()

	booking, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)
	assert.Equal(t, viewerID, booking.UserID)
	assert.Contains(t, f.events.lockedIDs, event.ID)

	_, err = f.bookings.CreateBooking(ctx, Actor{UserID: secondUser}, domain.BookingPatch{EventID: strPtr(event.ID)})
	assert.ErrorIs(t, err, domain.ErrEventFull)

	stored, err := f.eventSvc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableTickets())
}

func TestBookingService_CreateRules(t *testing.T) {
	f := newFixture()
	_, _, event := seedLouvre(t, f, 5)
	ctx := context.Background()

	_, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)

	_, err = f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(secondUser)})
	require.Error(t, err) // second user is unknown to the identity service
	f.users.users[secondUser] = &domain.User{ID: secondUser, Login: "second"}
	_, err = f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(secondUser)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   Actor
		eventID string
		wantErr *domain.Error
	}{
		{name: "duplicate", actor: viewer, eventID: event.ID, wantErr: domain.ErrDuplicateBooking},
		{name: "blacklisted", actor: Actor{UserID: secondUser}, eventID: event.ID, wantErr: domain.ErrUserBlacklisted},
		{name: "host", actor: host, eventID: event.ID, wantErr: domain.ErrHostCannotBook},
		{name: "unknown event", actor: viewer, eventID: missingID, wantErr: domain.ErrEventNotFound},
		{name: "malformed id", actor: viewer, eventID: "42", wantErr: domain.ErrInvalidUUID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bookings.CreateBooking(ctx, tt.actor, domain.BookingPatch{EventID: strPtr(tt.eventID)})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("started event", func(t *testing.T) {
		f.store.now = time.Date(2030, 1, 1, 20, 30, 0, 0, time.UTC)
		defer func() { f.store.now = time.Date(2029, 6, 1, 12, 0, 0, 0, time.UTC) }()

		_, err := f.bookings.CreateBooking(ctx, Actor{UserID: otherHost}, domain.BookingPatch{EventID: strPtr(event.ID)})
		assert.ErrorIs(t, err, domain.ErrEventFinished)
	})
}

func TestBookingService_UnblockPermitsBooking(t *testing.T) {
	f := newFixture()
	_, _, event := seedLouvre(t, f, 5)
	ctx := context.Background()
	f.users.users[viewerID] = &domain.User{ID: viewerID, Login: "viewer"}

	entry, err := f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(viewerID)})
	require.NoError(t, err)

	_, err = f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.ErrorIs(t, err, domain.ErrUserBlacklisted)

	require.NoError(t, f.blacklist.DeleteBlockEntry(ctx, host, entry.ID))

	booking, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)
	assert.Equal(t, viewerID, booking.UserID)
	assert.Equal(t, event.ID, booking.EventID)
}

func TestBookingService_UpdateAndDelete(t *testing.T) {
	f := newFixture()
	_, place, event := seedLouvre(t, f, 5)
	ctx := context.Background()

	later, err := f.eventSvc.CreateEvent(ctx, host, place.ID, domain.EventPatch{
		FilmWorkID:      strPtr(filmID),
		EventStart:      strPtr("2030-01-02 21:00"),
		EventEnd:        strPtr("2030-01-02 22:00"),
		MaxTicketsCount: intPtr(1),
	})
	require.NoError(t, err)

	booking, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)

	_, err = f.bookings.UpdateBooking(ctx, host, booking.ID, domain.BookingPatch{EventID: strPtr(later.ID)})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	moved, err := f.bookings.UpdateBooking(ctx, viewer, booking.ID, domain.BookingPatch{EventID: strPtr(later.ID)})
	require.NoError(t, err)
	assert.Equal(t, later.ID, moved.EventID)

	// Moving onto the same event does not count the booking against itself
	_, err = f.bookings.UpdateBooking(ctx, viewer, booking.ID, domain.BookingPatch{EventID: strPtr(later.ID)})
	assert.NoError(t, err)

	err = f.bookings.DeleteBooking(ctx, Actor{UserID: secondUser}, booking.ID)
	assert.ErrorIs(t, err, domain.ErrNotHostOrOwner)

	err = f.bookings.DeleteBooking(ctx, host, booking.ID)
	assert.NoError(t, err)

	_, err = f.bookings.GetBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestBookingService_ListByHost(t *testing.T) {
	f := newFixture()
	_, _, event := seedLouvre(t, f, 5)
	ctx := context.Background()

	_, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)

	bookings, total, err := f.bookings.ListBookings(ctx, repository.BookingFilter{HostID: hostID}, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, bookings, 1)

	bookings, total, err = f.bookings.ListBookings(ctx, repository.BookingFilter{HostID: otherHost}, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, bookings)

	_, _, err = f.bookings.ListBookings(ctx, repository.BookingFilter{UserID: "me"}, ListRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidUUID)
}

func TestCityService(t *testing.T) {
	f := newFixture()
	city, place, _ := seedLouvre(t, f, 1)
	ctx := context.Background()

	_, err := f.cities.CreateCity(ctx, admin, domain.CityPatch{Name: strPtr("Paris"), Timezone: strPtr("Europe/Paris")})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = f.cities.CreateCity(ctx, admin, domain.CityPatch{Name: strPtr("Atlantis"), Timezone: strPtr("Ocean/Atlantis")})
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)

	// Renaming to its own name is not a duplicate
	updated, err := f.cities.UpdateCity(ctx, admin, city.ID, domain.CityPatch{Name: strPtr("Paris")})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", updated.Timezone)

	err = f.cities.DeleteCity(ctx, admin, city.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents)

	_, err = f.cities.GetCity(ctx, "paris")
	assert.ErrorIs(t, err, domain.ErrInvalidUUID)

	cities, total, err := f.cities.ListCities(ctx, ListRequest{Page: "2"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, cities)

	assert.Equal(t, city.ID, place.CityID)
}

func TestCityService_PersistenceError(t *testing.T) {
	f := newFixture()
	f.store.failWith = errors.New("connection reset")

	_, err := f.cities.CreateCity(context.Background(), admin, domain.CityPatch{Name: strPtr("Paris"), Timezone: strPtr("Europe/Paris")})
	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
	assert.Equal(t, "database error", domain.MessageOf(err))
}

func TestPlaceService(t *testing.T) {
	f := newFixture()
	city, place, _ := seedLouvre(t, f, 1)
	ctx := context.Background()

	_, err := f.places.CreatePlace(ctx, host, domain.PlacePatch{Name: strPtr("Louvre"), CityID: strPtr(city.ID), Address: strPtr("Elsewhere")})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = f.places.CreatePlace(ctx, host, domain.PlacePatch{Name: strPtr("Orsay"), CityID: strPtr(missingID), Address: strPtr("Quai")})
	assert.ErrorIs(t, err, domain.ErrCityNotFound)

	_, err = f.places.UpdatePlace(ctx, viewer, place.ID, domain.PlacePatch{Name: strPtr("Mine")})
	assert.ErrorIs(t, err, domain.ErrNotHost)

	updated, err := f.places.UpdatePlace(ctx, host, place.ID, domain.PlacePatch{Address: strPtr("99 Rue de Rivoli")})
	require.NoError(t, err)
	assert.Equal(t, "Louvre", updated.Name)
	assert.Equal(t, "99 Rue de Rivoli", updated.Address)

	err = f.places.DeletePlace(ctx, host, place.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents)

	places, total, err := f.places.ListPlaces(ctx, repository.PlaceFilter{CityID: city.ID}, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, places, 1)
}

func TestBlacklistService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.users[viewerID] = &domain.User{ID: viewerID, Login: "viewer"}

	entry, err := f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(viewerID)})
	require.NoError(t, err)
	assert.Equal(t, hostID, entry.HostID)

	_, err = f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(viewerID)})
	assert.ErrorIs(t, err, domain.ErrAlreadyBlocked)

	_, err = f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(missingID)})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = f.blacklist.GetBlockEntry(ctx, viewer, entry.ID)
	assert.ErrorIs(t, err, domain.ErrOnlyHost)

	got, err := f.blacklist.GetBlockEntry(ctx, host, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, viewerID, got.UserID)

	err = f.blacklist.DeleteBlockEntry(ctx, viewer, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotHost)

	entries, total, err := f.blacklist.ListBlockEntries(ctx, repository.BlacklistFilter{HostID: hostID}, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)

	require.NoError(t, f.blacklist.DeleteBlockEntry(ctx, host, entry.ID))

	f.users.err = domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrIdentity.Message, errors.New("timeout"))
	_, err = f.blacklist.CreateBlockEntry(ctx, host, domain.BlockEntryPatch{UserID: strPtr(viewerID)})
	assert.Equal(t, domain.KindUpstreamUnavailable, domain.KindOf(err))
}

func TestHostService_Pagination(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	hostIDs := []string{
		"00000000-0000-0000-0000-000000000001",
		"00000000-0000-0000-0000-000000000002",
		"00000000-0000-0000-0000-000000000003",
		"00000000-0000-0000-0000-000000000004",
		"00000000-0000-0000-0000-000000000005",
		"00000000-0000-0000-0000-000000000006",
		"00000000-0000-0000-0000-000000000007",
	}
	for i, id := range hostIDs {
		// two places for the first host to check dedupe
		f.store.places[id] = &domain.Place{ID: id, HostID: id}
		if i == 0 {
			f.store.places["extra"] = &domain.Place{ID: "extra", HostID: id}
		}
		f.logins.logins[id] = "login" + id[len(id)-1:]
	}
	delete(f.logins.logins, hostIDs[0])

	hosts, total, err := f.hosts.ListHosts(ctx, viewer, HostListFilter{}, ListRequest{Sorting: []string{"desc"}, Page: "2"})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	// page 2 of the desc order is hosts 2 and 1; host 1 has no login
	require.Len(t, hosts, 1)
	assert.Equal(t, hostIDs[1], hosts[0].ID)
	assert.Equal(t, "login2", hosts[0].Login)
	require.Len(t, f.logins.calls, 1)
	assert.Equal(t, []string{hostIDs[1], hostIDs[0]}, f.logins.calls[0])

	hosts, _, err = f.hosts.ListHosts(ctx, viewer, HostListFilter{}, ListRequest{})
	require.NoError(t, err)
	require.Len(t, hosts, 4)
	assert.Equal(t, hostIDs[1], hosts[0].ID)

	hosts, total, err = f.hosts.ListHosts(ctx, viewer, HostListFilter{}, ListRequest{Page: "9"})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, hosts)
	assert.NotNil(t, hosts)

	_, _, err = f.hosts.ListHosts(ctx, viewer, HostListFilter{}, ListRequest{Sorting: []string{"sideways"}})
	assert.ErrorIs(t, err, domain.ErrInvalidSortDirection)

	_, _, err = f.hosts.ListHosts(ctx, viewer, HostListFilter{CityID: missingID}, ListRequest{})
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestHostService_Mine(t *testing.T) {
	f := newFixture()
	_, _, event := seedLouvre(t, f, 5)
	ctx := context.Background()
	f.store.places[missingID] = &domain.Place{ID: missingID, HostID: otherHost}
	f.logins.logins[hostID] = "host"
	f.logins.logins[otherHost] = "other"

	_, err := f.bookings.CreateBooking(ctx, viewer, domain.BookingPatch{EventID: strPtr(event.ID)})
	require.NoError(t, err)

	hosts, total, err := f.hosts.ListHosts(ctx, viewer, HostListFilter{Mine: true}, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []domain.Host{{ID: hostID, Login: "host"}}, hosts)
}

func TestHostService_UpstreamFailure(t *testing.T) {
	f := newFixture()
	f.store.places[missingID] = &domain.Place{ID: missingID, HostID: hostID}
	f.logins.err = domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrUserInfo.Message, errors.New("attempts exhausted"))

	_, _, err := f.hosts.ListHosts(context.Background(), viewer, HostListFilter{}, ListRequest{})
	assert.ErrorIs(t, err, domain.ErrUserInfo)
	assert.False(t, domain.IsClientError(err))
}

func TestPipeline_UpdateWithoutUpdater(t *testing.T) {
	f := newFixture()
	p := NewPipeline[domain.BlockEntry, domain.BlockEntryPatch]("black_list", &MockBlacklistRepository{f.store}, &blacklistPolicy{}, f.tx, nil)

	_, err := p.Update(context.Background(), host, missingID, domain.BlockEntryPatch{})
	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
}
