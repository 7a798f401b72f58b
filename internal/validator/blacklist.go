package validator

import (
	"context"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// BlockChecker reports whether a host blocked a user
type BlockChecker interface {
	Exists(ctx context.Context, hostID, userID string) (bool, error)
}

// RequireNotBlacklisted fails when the event host blocked the user
func RequireNotBlacklisted(ctx context.Context, entries BlockChecker, event *domain.Event, userID string) error {
	blocked, err := entries.Exists(ctx, event.HostID, userID)
	if err != nil {
		return domain.Persistence(err)
	}
	if blocked {
		return domain.ErrUserBlacklisted
	}
	return nil
}
