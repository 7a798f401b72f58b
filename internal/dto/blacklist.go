package dto

import "github.com/prohmpiriya/cinema-booking/internal/domain"

// CreateBlockEntryRequest represents the request to block a user
type CreateBlockEntryRequest struct {
	UserID *string `json:"user_id" binding:"required"`
}

// ToPatch converts the request into a block entry patch
func (r *CreateBlockEntryRequest) ToPatch() domain.BlockEntryPatch {
	return domain.BlockEntryPatch{UserID: r.UserID}
}

// BlockEntryResponse represents the response for a block entry
type BlockEntryResponse struct {
	ID        string `json:"id"`
	HostID    string `json:"host_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// ToBlockEntryResponse converts a block entry to its response
func ToBlockEntryResponse(entry *domain.BlockEntry) *BlockEntryResponse {
	return &BlockEntryResponse{
		ID:        entry.ID,
		HostID:    entry.HostID,
		UserID:    entry.UserID,
		CreatedAt: formatTime(entry.CreatedAt),
	}
}

// ToBlockEntryResponses converts a list of block entries
func ToBlockEntryResponses(entries []*domain.BlockEntry) []*BlockEntryResponse {
	out := make([]*BlockEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = ToBlockEntryResponse(entry)
	}
	return out
}
