package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
)

// eventPolicy holds the event rules
type eventPolicy struct {
	placeRepo   repository.PlaceRepository
	cityRepo    repository.CityRepository
	bookingRepo repository.BookingRepository
	films       FilmCatalog
	schedule    *validator.Schedule
}

// ApplyPatch copies the film and capacity. Timestamps are parsed during
// validation because they depend on the city timezone.
func (p *eventPolicy) ApplyPatch(event *domain.Event, patch domain.EventPatch) {
	if patch.FilmWorkID != nil {
		event.FilmWorkID = *patch.FilmWorkID
	}
	if patch.MaxTicketsCount != nil {
		event.MaxTicketsCount = *patch.MaxTicketsCount
	}
}

func (p *eventPolicy) ValidateCreate(ctx context.Context, actor Actor, event *domain.Event, patch domain.EventPatch) error {
	place, err := validator.RequireExists(ctx, event.PlaceID, p.placeRepo.GetByID, domain.ErrPlaceNotFound)
	if err != nil {
		return err
	}
	if err := validator.RequireOwner(place.HostID, actor.UserID, domain.ErrNotPlaceHost); err != nil {
		return err
	}

	loc, err := p.location(ctx, place)
	if err != nil {
		return err
	}
	start, end, err := p.schedule.Validate(ctx, place.ID, stringValue(patch.EventStart), stringValue(patch.EventEnd), loc, "")
	if err != nil {
		return err
	}
	event.EventStart, event.EventEnd = start, end

	if err := validator.RequireValidCapacity(event.MaxTicketsCount); err != nil {
		return err
	}
	return p.requireFilm(ctx, actor, event.FilmWorkID)
}

func (p *eventPolicy) ValidateUpdate(ctx context.Context, actor Actor, existing, event *domain.Event, patch domain.EventPatch) error {
	if err := validator.RequireOwner(existing.HostID, actor.UserID, domain.ErrNotHost); err != nil {
		return err
	}

	if patch.HasSchedule() {
		place, err := validator.RequireExists(ctx, existing.PlaceID, p.placeRepo.GetByID, domain.ErrPlaceNotFound)
		if err != nil {
			return err
		}
		loc, err := p.location(ctx, place)
		if err != nil {
			return err
		}

		rawStart := p.schedule.Format(existing.EventStart, loc)
		if patch.EventStart != nil {
			rawStart = *patch.EventStart
		}
		rawEnd := p.schedule.Format(existing.EventEnd, loc)
		if patch.EventEnd != nil {
			rawEnd = *patch.EventEnd
		}

		start, end, err := p.schedule.Validate(ctx, place.ID, rawStart, rawEnd, loc, existing.ID)
		if err != nil {
			return err
		}
		event.EventStart, event.EventEnd = start, end
	}

	if patch.MaxTicketsCount != nil {
		if err := validator.RequireValidCapacity(event.MaxTicketsCount); err != nil {
			return err
		}
	}
	if patch.FilmWorkID != nil {
		return p.requireFilm(ctx, actor, event.FilmWorkID)
	}
	return nil
}

func (p *eventPolicy) ValidateDelete(ctx context.Context, actor Actor, event *domain.Event) error {
	if err := validator.RequireOwner(event.HostID, actor.UserID, domain.ErrNotHost); err != nil {
		return err
	}
	count, err := p.bookingRepo.CountByEvent(ctx, event.ID)
	return validator.RequireNoDependents(count > 0, err)
}

func (p *eventPolicy) ValidateGet(context.Context, Actor, *domain.Event) error {
	return nil
}

// location loads the timezone of the place's city
func (p *eventPolicy) location(ctx context.Context, place *domain.Place) (*time.Location, error) {
	city, err := validator.RequireExists(ctx, place.CityID, p.cityRepo.GetByID, domain.ErrCityNotFound)
	if err != nil {
		return nil, err
	}
	return city.Location()
}

// requireFilm checks the film work exists in the film service
func (p *eventPolicy) requireFilm(ctx context.Context, actor Actor, filmWorkID string) error {
	if filmWorkID == "" {
		return domain.ErrInvalidFilmWork
	}
	if err := validator.RequireUUID(filmWorkID); err != nil {
		return err
	}
	ok, err := p.films.Exists(ctx, actor.Authorization, filmWorkID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidFilmWork
	}
	return nil
}

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
	placeRepo repository.PlaceRepository
	pipeline  *Pipeline[domain.Event, domain.EventPatch]
	settings  Settings
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repository.EventRepository,
	placeRepo repository.PlaceRepository,
	cityRepo repository.CityRepository,
	bookingRepo repository.BookingRepository,
	films FilmCatalog,
	tx repository.Transactor,
	settings Settings,
	log *logger.Logger,
) EventService {
	settings = settings.withDefaults()
	policy := &eventPolicy{
		placeRepo:   placeRepo,
		cityRepo:    cityRepo,
		bookingRepo: bookingRepo,
		films:       films,
		schedule:    validator.NewSchedule(eventRepo, settings.DateLayout, settings.Now),
	}
	return &eventService{
		eventRepo: eventRepo,
		placeRepo: placeRepo,
		pipeline:  NewPipeline[domain.Event, domain.EventPatch]("event", eventRepo, policy, tx, log),
		settings:  settings,
	}
}

// CreateEvent schedules an event at a place hosted by the actor
func (s *eventService) CreateEvent(ctx context.Context, actor Actor, placeID string, patch domain.EventPatch) (*domain.Event, error) {
	event := &domain.Event{
		ID:      uuid.New().String(),
		PlaceID: placeID,
		HostID:  actor.UserID,
	}
	return s.pipeline.Create(ctx, actor, event, patch)
}

// GetEvent retrieves an event by ID
func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.pipeline.Get(ctx, Actor{}, id)
}

// ListEvents lists events with filters, sorting and pagination
func (s *eventService) ListEvents(ctx context.Context, filter EventListFilter, req ListRequest) ([]*domain.Event, int, error) {
	repoFilter := repository.EventFilter{
		PlaceID:    filter.PlaceID,
		HostID:     filter.HostID,
		FilmWorkID: filter.FilmWorkID,
	}

	if filter.PlaceID != "" {
		if _, err := validator.RequireExists(ctx, filter.PlaceID, s.placeRepo.GetByID, domain.ErrPlaceNotFound); err != nil {
			return nil, 0, err
		}
	}
	if err := requireFilterID(filter.HostID); err != nil {
		return nil, 0, err
	}
	if err := requireFilterID(filter.FilmWorkID); err != nil {
		return nil, 0, err
	}

	var err error
	if repoFilter.EarlierThan, err = s.settings.parseFilterTime(filter.EarlierThan); err != nil {
		return nil, 0, err
	}
	if repoFilter.LaterThan, err = s.settings.parseFilterTime(filter.LaterThan); err != nil {
		return nil, 0, err
	}

	params, err := s.settings.parseList(req, repository.EventSortFields)
	if err != nil {
		return nil, 0, err
	}
	events, total, err := s.eventRepo.List(ctx, repoFilter, params)
	if err != nil {
		return nil, 0, domain.Persistence(err)
	}
	return events, total, nil
}

// UpdateEvent updates the supplied fields of an event
func (s *eventService) UpdateEvent(ctx context.Context, actor Actor, id string, patch domain.EventPatch) (*domain.Event, error) {
	return s.pipeline.Update(ctx, actor, id, patch)
}

// DeleteEvent deletes an event without bookings
func (s *eventService) DeleteEvent(ctx context.Context, actor Actor, id string) error {
	return s.pipeline.Delete(ctx, actor, id)
}
