package service

import (
	"context"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/query"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
	"github.com/prohmpiriya/cinema-booking/pkg/telemetry"
	"go.uber.org/zap"
)

// HostListFilter contains filter options for listing hosts
type HostListFilter struct {
	CityID string
	// Mine keeps only hosts of events the actor booked
	Mine bool
}

// hostService implements HostService
type hostService struct {
	placeRepo   repository.PlaceRepository
	cityRepo    repository.CityRepository
	bookingRepo repository.BookingRepository
	logins      LoginResolver
	settings    Settings
	log         *logger.Logger
}

// NewHostService creates a new HostService
func NewHostService(
	placeRepo repository.PlaceRepository,
	cityRepo repository.CityRepository,
	bookingRepo repository.BookingRepository,
	logins LoginResolver,
	settings Settings,
	log *logger.Logger,
) HostService {
	if log == nil {
		log = logger.NewNop()
	}
	return &hostService{
		placeRepo:   placeRepo,
		cityRepo:    cityRepo,
		bookingRepo: bookingRepo,
		logins:      logins,
		settings:    settings.withDefaults(),
		log:         log,
	}
}

// ListHosts collects the hosts of all places, optionally in one city,
// pages their ids and resolves the logins of that page in one call.
// The first sorting value is the direction of the id order.
func (s *hostService) ListHosts(ctx context.Context, actor Actor, filter HostListFilter, req ListRequest) ([]domain.Host, int, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.host.list")
	defer span.End()

	if filter.CityID != "" {
		if _, err := validator.RequireExists(ctx, filter.CityID, s.cityRepo.GetByID, domain.ErrCityNotFound); err != nil {
			return nil, 0, err
		}
	}

	direction := query.Asc
	if len(req.Sorting) > 0 {
		var err error
		if direction, err = query.ParseDirection(req.Sorting[0]); err != nil {
			return nil, 0, err
		}
	}
	page, err := query.ParsePage(req.Page, s.settings.PageSize)
	if err != nil {
		return nil, 0, err
	}

	ids, err := s.placeRepo.ListHostIDs(ctx, filter.CityID)
	if err != nil {
		return nil, 0, domain.Persistence(err)
	}
	if filter.Mine {
		booked, err := s.bookingRepo.ListHostIDsByUser(ctx, actor.UserID)
		if err != nil {
			return nil, 0, domain.Persistence(err)
		}
		ids = intersect(ids, booked)
	}

	pageIDs, total := query.PageStrings(query.Dedupe(ids), direction, page)
	if len(pageIDs) == 0 {
		return []domain.Host{}, total, nil
	}

	logins, err := s.logins.Logins(ctx, pageIDs)
	if err != nil {
		telemetry.SetSpanError(span, err)
		s.log.Error("failed to resolve host logins", zap.Int("hosts", len(pageIDs)), zap.Error(err))
		return nil, 0, err
	}

	hosts := make([]domain.Host, 0, len(pageIDs))
	for _, id := range pageIDs {
		login, ok := logins[id]
		if !ok {
			continue
		}
		hosts = append(hosts, domain.Host{ID: id, Login: login})
	}
	return hosts, total, nil
}

// intersect keeps the ids of a that also appear in b
func intersect(a, b []string) []string {
	keep := make(map[string]struct{}, len(b))
	for _, id := range b {
		keep[id] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, id := range a {
		if _, ok := keep[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
