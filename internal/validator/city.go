package validator

import (
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// RequireValidTimezone accepts IANA timezone names only
func RequireValidTimezone(tz string) error {
	if tz == "" || tz == "Local" {
		return domain.ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return domain.ErrInvalidTimezone
	}
	return nil
}
