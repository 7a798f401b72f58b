package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
)

// placePolicy holds the place rules
type placePolicy struct {
	placeRepo repository.PlaceRepository
	cityRepo  repository.CityRepository
}

func (p *placePolicy) ApplyPatch(place *domain.Place, patch domain.PlacePatch) {
	if patch.Name != nil {
		place.Name = *patch.Name
	}
	if patch.CityID != nil {
		place.CityID = *patch.CityID
	}
	if patch.Address != nil {
		place.Address = *patch.Address
	}
}

func (p *placePolicy) ValidateCreate(ctx context.Context, _ Actor, place *domain.Place, _ domain.PlacePatch) error {
	if _, err := validator.RequireExists(ctx, place.CityID, p.cityRepo.GetByID, domain.ErrCityNotFound); err != nil {
		return err
	}
	return p.requireUnique(ctx, place, "")
}

func (p *placePolicy) ValidateUpdate(ctx context.Context, actor Actor, existing, place *domain.Place, patch domain.PlacePatch) error {
	if err := validator.RequireOwner(existing.HostID, actor.UserID, domain.ErrNotHost); err != nil {
		return err
	}
	if patch.CityID != nil {
		if _, err := validator.RequireExists(ctx, place.CityID, p.cityRepo.GetByID, domain.ErrCityNotFound); err != nil {
			return err
		}
	}
	return p.requireUnique(ctx, place, existing.ID)
}

func (p *placePolicy) ValidateDelete(ctx context.Context, actor Actor, place *domain.Place) error {
	if err := validator.RequireOwner(place.HostID, actor.UserID, domain.ErrNotHost); err != nil {
		return err
	}
	return validator.RequireNoDependents(p.placeRepo.HasEvents(ctx, place.ID))
}

func (p *placePolicy) ValidateGet(context.Context, Actor, *domain.Place) error {
	return nil
}

// requireUnique rejects a name or address used by another place
func (p *placePolicy) requireUnique(ctx context.Context, place *domain.Place, excludeID string) error {
	exists, err := p.placeRepo.NameExists(ctx, place.Name, excludeID)
	if err := validator.RequireUnique(exists, err, domain.ErrDuplicateName); err != nil {
		return err
	}
	exists, err = p.placeRepo.AddressExists(ctx, place.Address, excludeID)
	return validator.RequireUnique(exists, err, domain.ErrDuplicateName)
}

// placeService implements PlaceService
type placeService struct {
	placeRepo repository.PlaceRepository
	cityRepo  repository.CityRepository
	pipeline  *Pipeline[domain.Place, domain.PlacePatch]
	settings  Settings
}

// NewPlaceService creates a new PlaceService
func NewPlaceService(placeRepo repository.PlaceRepository, cityRepo repository.CityRepository, tx repository.Transactor, settings Settings, log *logger.Logger) PlaceService {
	policy := &placePolicy{placeRepo: placeRepo, cityRepo: cityRepo}
	return &placeService{
		placeRepo: placeRepo,
		cityRepo:  cityRepo,
		pipeline:  NewPipeline[domain.Place, domain.PlacePatch]("place", placeRepo, policy, tx, log),
		settings:  settings.withDefaults(),
	}
}

// CreatePlace creates a place hosted by the actor
func (s *placeService) CreatePlace(ctx context.Context, actor Actor, patch domain.PlacePatch) (*domain.Place, error) {
	place := &domain.Place{ID: uuid.New().String(), HostID: actor.UserID}
	return s.pipeline.Create(ctx, actor, place, patch)
}

// GetPlace retrieves a place by ID
func (s *placeService) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	return s.pipeline.Get(ctx, Actor{}, id)
}

// ListPlaces lists places with filters, sorting and pagination
func (s *placeService) ListPlaces(ctx context.Context, filter repository.PlaceFilter, req ListRequest) ([]*domain.Place, int, error) {
	if err := requireFilterID(filter.HostID); err != nil {
		return nil, 0, err
	}
	if filter.CityID != "" {
		if _, err := validator.RequireExists(ctx, filter.CityID, s.cityRepo.GetByID, domain.ErrCityNotFound); err != nil {
			return nil, 0, err
		}
	}
	params, err := s.settings.parseList(req, repository.PlaceSortFields)
	if err != nil {
		return nil, 0, err
	}
	places, total, err := s.placeRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, domain.Persistence(err)
	}
	return places, total, nil
}

// UpdatePlace updates the supplied fields of a place
func (s *placeService) UpdatePlace(ctx context.Context, actor Actor, id string, patch domain.PlacePatch) (*domain.Place, error) {
	return s.pipeline.Update(ctx, actor, id, patch)
}

// DeletePlace deletes a place without events
func (s *placeService) DeletePlace(ctx context.Context, actor Actor, id string) error {
	return s.pipeline.Delete(ctx, actor, id)
}
