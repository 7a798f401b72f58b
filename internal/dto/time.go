package dto

import "time"

// formatTime renders t as RFC 3339 in UTC
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
