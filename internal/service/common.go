package service

import (
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/query"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
)

// Default settings
const (
	DefaultPageSize         = 5
	DefaultFilterDateLayout = "2006-01-02 15:04:05"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID        string
	Authorization string
	IsSuperuser   bool
}

// ListRequest holds the raw sorting and page parameters of a list request
type ListRequest struct {
	Sorting []string
	Page    string
}

// Settings configures the services
type Settings struct {
	PageSize         int
	DateLayout       string
	FilterDateLayout string
	Now              func() time.Time
}

// withDefaults fills unset settings
func (s Settings) withDefaults() Settings {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.DateLayout == "" {
		s.DateLayout = validator.DefaultDateLayout
	}
	if s.FilterDateLayout == "" {
		s.FilterDateLayout = DefaultFilterDateLayout
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// parseList validates the sorting against fields and reads the page
func (s Settings) parseList(req ListRequest, fields query.Fields) (query.Params, error) {
	sort, err := query.ParseSort(req.Sorting, fields)
	if err != nil {
		return query.Params{}, err
	}
	page, err := query.ParsePage(req.Page, s.PageSize)
	if err != nil {
		return query.Params{}, err
	}
	return query.Params{Sort: sort, Page: page}, nil
}

// parseFilterTime reads a range filter as a UTC timestamp
func (s Settings) parseFilterTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(s.FilterDateLayout, raw, time.UTC)
	if err != nil {
		return nil, domain.InvalidDateError(s.FilterDateLayout)
	}
	return &t, nil
}

// requireFilterID checks an optional id filter is a UUID
func requireFilterID(id string) error {
	if id == "" {
		return nil
	}
	return validator.RequireUUID(id)
}

// stringValue dereferences an optional string
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
