// Package validator holds the checks that must pass before a mutation is committed.
// Every check returns nil or a *domain.Error.
package validator

import (
	"context"

	"github.com/google/uuid"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// RequireUUID rejects ids that are not UUIDs
func RequireUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidUUID
	}
	return nil
}

// RequireExists loads the entity with id through get, which returns nil for
// absent rows, and fails with notFound when it does not exist
func RequireExists[T any](ctx context.Context, id string, get func(ctx context.Context, id string) (*T, error), notFound *domain.Error) (*T, error) {
	if err := RequireUUID(id); err != nil {
		return nil, err
	}
	entity, err := get(ctx, id)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if entity == nil {
		return nil, notFound
	}
	return entity, nil
}

// RequireOwner allows only the owner of an object
func RequireOwner(ownerID, actorID string, forbidden *domain.Error) error {
	if ownerID != actorID {
		return forbidden
	}
	return nil
}

// RequireOwnerOrParticipant allows the owner or the participant of an object
func RequireOwnerOrParticipant(ownerID, participantID, actorID string) error {
	if actorID != ownerID && actorID != participantID {
		return domain.ErrNotHostOrOwner
	}
	return nil
}

// RequireNoDependents rejects deleting an object that is still referenced
func RequireNoDependents(has bool, err error) error {
	if err != nil {
		return domain.Persistence(err)
	}
	if has {
		return domain.ErrHasDependents
	}
	return nil
}

// RequireUnique rejects a value another object already uses
func RequireUnique(exists bool, err error, conflict *domain.Error) error {
	if err != nil {
		return domain.Persistence(err)
	}
	if exists {
		return conflict
	}
	return nil
}
