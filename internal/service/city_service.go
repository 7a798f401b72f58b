package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
)

// cityPolicy holds the city rules
type cityPolicy struct {
	cityRepo repository.CityRepository
}

func (p *cityPolicy) ApplyPatch(city *domain.City, patch domain.CityPatch) {
	if patch.Name != nil {
		city.Name = *patch.Name
	}
	if patch.Timezone != nil {
		city.Timezone = *patch.Timezone
	}
}

func (p *cityPolicy) ValidateCreate(ctx context.Context, _ Actor, city *domain.City, _ domain.CityPatch) error {
	if err := validator.RequireValidTimezone(city.Timezone); err != nil {
		return err
	}
	exists, err := p.cityRepo.NameExists(ctx, city.Name, "")
	return validator.RequireUnique(exists, err, domain.ErrDuplicateName)
}

func (p *cityPolicy) ValidateUpdate(ctx context.Context, _ Actor, existing, city *domain.City, patch domain.CityPatch) error {
	if patch.Timezone != nil {
		if err := validator.RequireValidTimezone(city.Timezone); err != nil {
			return err
		}
	}
	if patch.Name != nil {
		exists, err := p.cityRepo.NameExists(ctx, city.Name, existing.ID)
		if err := validator.RequireUnique(exists, err, domain.ErrDuplicateName); err != nil {
			return err
		}
	}
	return nil
}

func (p *cityPolicy) ValidateDelete(ctx context.Context, _ Actor, city *domain.City) error {
	return validator.RequireNoDependents(p.cityRepo.HasPlaces(ctx, city.ID))
}

func (p *cityPolicy) ValidateGet(context.Context, Actor, *domain.City) error {
	return nil
}

// cityService implements CityService
type cityService struct {
	cityRepo repository.CityRepository
	pipeline *Pipeline[domain.City, domain.CityPatch]
	settings Settings
}

// NewCityService creates a new CityService
func NewCityService(cityRepo repository.CityRepository, tx repository.Transactor, settings Settings, log *logger.Logger) CityService {
	return &cityService{
		cityRepo: cityRepo,
		pipeline: NewPipeline[domain.City, domain.CityPatch]("city", cityRepo, &cityPolicy{cityRepo: cityRepo}, tx, log),
		settings: settings.withDefaults(),
	}
}

// CreateCity creates a new city
func (s *cityService) CreateCity(ctx context.Context, actor Actor, patch domain.CityPatch) (*domain.City, error) {
	return s.pipeline.Create(ctx, actor, &domain.City{ID: uuid.New().String()}, patch)
}

// GetCity retrieves a city by ID
func (s *cityService) GetCity(ctx context.Context, id string) (*domain.City, error) {
	return s.pipeline.Get(ctx, Actor{}, id)
}

// ListCities lists cities with sorting and pagination
func (s *cityService) ListCities(ctx context.Context, req ListRequest) ([]*domain.City, int, error) {
	params, err := s.settings.parseList(req, repository.CitySortFields)
	if err != nil {
		return nil, 0, err
	}
	cities, total, err := s.cityRepo.List(ctx, params)
	if err != nil {
		return nil, 0, domain.Persistence(err)
	}
	return cities, total, nil
}

// UpdateCity updates the supplied fields of a city
func (s *cityService) UpdateCity(ctx context.Context, actor Actor, id string, patch domain.CityPatch) (*domain.City, error) {
	return s.pipeline.Update(ctx, actor, id, patch)
}

// DeleteCity deletes a city without places
func (s *cityService) DeleteCity(ctx context.Context, actor Actor, id string) error {
	return s.pipeline.Delete(ctx, actor, id)
}
