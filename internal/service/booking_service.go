package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
	"github.com/prohmpiriya/cinema-booking/pkg/metrics"
)

// bookingPolicy holds the booking rules
type bookingPolicy struct {
	eventRepo     repository.EventRepository
	bookingRepo   repository.BookingRepository
	blacklistRepo repository.BlacklistRepository
	settings      Settings
}

func (p *bookingPolicy) ApplyPatch(booking *domain.Booking, patch domain.BookingPatch) {
	if patch.EventID != nil {
		booking.EventID = *patch.EventID
	}
}

func (p *bookingPolicy) ValidateCreate(ctx context.Context, _ Actor, booking *domain.Booking, _ domain.BookingPatch) error {
	return p.requireBookable(ctx, booking, "")
}

func (p *bookingPolicy) ValidateUpdate(ctx context.Context, actor Actor, existing, booking *domain.Booking, patch domain.BookingPatch) error {
	if err := validator.RequireOwner(existing.UserID, actor.UserID, domain.ErrNotOwner); err != nil {
		return err
	}
	if patch.EventID == nil || booking.EventID == existing.EventID {
		return nil
	}
	return p.requireBookable(ctx, booking, existing.ID)
}

func (p *bookingPolicy) ValidateDelete(ctx context.Context, actor Actor, booking *domain.Booking) error {
	event, err := p.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		return domain.Persistence(err)
	}
	hostID := ""
	if event != nil {
		hostID = event.HostID
	}
	return validator.RequireOwnerOrParticipant(hostID, booking.UserID, actor.UserID)
}

func (p *bookingPolicy) ValidateGet(context.Context, Actor, *domain.Booking) error {
	return nil
}

// requireBookable locks the booked event and checks the booking user may
// take one of its tickets. excludeID is the booking being moved.
func (p *bookingPolicy) requireBookable(ctx context.Context, booking *domain.Booking, excludeID string) error {
	event, err := validator.RequireExists(ctx, booking.EventID, p.eventRepo.GetByIDForUpdate, domain.ErrEventNotFound)
	if err != nil {
		return err
	}
	if err := validator.RequireNotStarted(event, p.settings.Now()); err != nil {
		return err
	}
	if err := validator.RequireNoDuplicateBooking(ctx, p.bookingRepo, booking.UserID, event.ID, excludeID); err != nil {
		return err
	}
	if err := validator.RequireNotBlacklisted(ctx, p.blacklistRepo, event, booking.UserID); err != nil {
		return err
	}
	if err := validator.RequireNotHost(event, booking.UserID); err != nil {
		return err
	}
	return validator.RequireAvailableTicket(ctx, p.bookingRepo, event)
}

// bookingService implements BookingService
type bookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	pipeline    *Pipeline[domain.Booking, domain.BookingPatch]
	settings    Settings
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	blacklistRepo repository.BlacklistRepository,
	tx repository.Transactor,
	settings Settings,
	log *logger.Logger,
) BookingService {
	settings = settings.withDefaults()
	policy := &bookingPolicy{
		eventRepo:     eventRepo,
		bookingRepo:   bookingRepo,
		blacklistRepo: blacklistRepo,
		settings:      settings,
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		pipeline:    NewPipeline[domain.Booking, domain.BookingPatch]("booking", bookingRepo, policy, tx, log),
		settings:    settings,
	}
}

// CreateBooking books one ticket of an event for the actor
func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, patch domain.BookingPatch) (*domain.Booking, error) {
	booking, err := s.pipeline.Create(ctx, actor, &domain.Booking{ID: uuid.New().String(), UserID: actor.UserID}, patch)
	if err != nil {
		return nil, err
	}
	metrics.BookingsCreated.Inc()
	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.pipeline.Get(ctx, Actor{}, id)
}

// ListBookings lists bookings with filters, sorting and pagination
func (s *bookingService) ListBookings(ctx context.Context, filter repository.BookingFilter, req ListRequest) ([]*domain.Booking, int, error) {
	if filter.EventID != "" {
		if _, err := validator.RequireExists(ctx, filter.EventID, s.eventRepo.GetByID, domain.ErrEventNotFound); err != nil {
			return nil, 0, err
		}
	}
	if err := requireFilterID(filter.UserID); err != nil {
		return nil, 0, err
	}
	if err := requireFilterID(filter.HostID); err != nil {
		return nil, 0, err
	}

	params, err := s.settings.parseList(req, repository.BookingSortFields)
	if err != nil {
		return nil, 0, err
	}
	bookings, total, err := s.bookingRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, domain.Persistence(err)
	}
	return bookings, total, nil
}

// UpdateBooking moves a booking to another event
func (s *bookingService) UpdateBooking(ctx context.Context, actor Actor, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	return s.pipeline.Update(ctx, actor, id, patch)
}

// DeleteBooking cancels a booking. The booking user and the event host may do so.
func (s *bookingService) DeleteBooking(ctx context.Context, actor Actor, id string) error {
	return s.pipeline.Delete(ctx, actor, id)
}
