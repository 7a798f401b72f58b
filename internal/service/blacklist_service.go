package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
)

// blacklistPolicy holds the block list rules
type blacklistPolicy struct {
	blacklistRepo repository.BlacklistRepository
	users         UserDirectory
}

func (p *blacklistPolicy) ApplyPatch(entry *domain.BlockEntry, patch domain.BlockEntryPatch) {
	if patch.UserID != nil {
		entry.UserID = *patch.UserID
	}
}

func (p *blacklistPolicy) ValidateCreate(ctx context.Context, actor Actor, entry *domain.BlockEntry, _ domain.BlockEntryPatch) error {
	if err := validator.RequireUUID(entry.UserID); err != nil {
		return err
	}
	user, err := p.users.GetUser(ctx, actor.Authorization, entry.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidUser
	}
	exists, err := p.blacklistRepo.Exists(ctx, entry.HostID, entry.UserID)
	return validator.RequireUnique(exists, err, domain.ErrAlreadyBlocked)
}

// ValidateUpdate rejects every update, block entries are immutable
func (p *blacklistPolicy) ValidateUpdate(context.Context, Actor, *domain.BlockEntry, *domain.BlockEntry, domain.BlockEntryPatch) error {
	return domain.ErrObjectNotFound
}

func (p *blacklistPolicy) ValidateDelete(_ context.Context, actor Actor, entry *domain.BlockEntry) error {
	return validator.RequireOwner(entry.HostID, actor.UserID, domain.ErrNotHost)
}

func (p *blacklistPolicy) ValidateGet(_ context.Context, actor Actor, entry *domain.BlockEntry) error {
	return validator.RequireOwner(entry.HostID, actor.UserID, domain.ErrOnlyHost)
}

// blacklistService implements BlacklistService
type blacklistService struct {
	blacklistRepo repository.BlacklistRepository
	pipeline      *Pipeline[domain.BlockEntry, domain.BlockEntryPatch]
	settings      Settings
}

// NewBlacklistService creates a new BlacklistService
func NewBlacklistService(blacklistRepo repository.BlacklistRepository, users UserDirectory, tx repository.Transactor, settings Settings, log *logger.Logger) BlacklistService {
	policy := &blacklistPolicy{blacklistRepo: blacklistRepo, users: users}
	return &blacklistService{
		blacklistRepo: blacklistRepo,
		pipeline:      NewPipeline[domain.BlockEntry, domain.BlockEntryPatch]("black_list", blacklistRepo, policy, tx, log),
		settings:      settings.withDefaults(),
	}
}

// CreateBlockEntry blocks a user from the actor's events
func (s *blacklistService) CreateBlockEntry(ctx context.Context, actor Actor, patch domain.BlockEntryPatch) (*domain.BlockEntry, error) {
	entry := &domain.BlockEntry{ID: uuid.New().String(), HostID: actor.UserID}
	return s.pipeline.Create(ctx, actor, entry, patch)
}

// GetBlockEntry retrieves a block entry of the actor
func (s *blacklistService) GetBlockEntry(ctx context.Context, actor Actor, id string) (*domain.BlockEntry, error) {
	return s.pipeline.Get(ctx, actor, id)
}

// ListBlockEntries lists block entries with filters, sorting and pagination
func (s *blacklistService) ListBlockEntries(ctx context.Context, filter repository.BlacklistFilter, req ListRequest) ([]*domain.BlockEntry, int, error) {
	if err := requireFilterID(filter.HostID); err != nil {
		return nil, 0, err
	}
	params, err := s.settings.parseList(req, repository.BlacklistSortFields)
	if err != nil {
		return nil, 0, err
	}
	entries, total, err := s.blacklistRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, domain.Persistence(err)
	}
	return entries, total, nil
}

// DeleteBlockEntry unblocks a user
func (s *blacklistService) DeleteBlockEntry(ctx context.Context, actor Actor, id string) error {
	return s.pipeline.Delete(ctx, actor, id)
}
