package dto

import "github.com/prohmpiriya/cinema-booking/internal/domain"

// CreatePlaceRequest represents the request to create a new place
type CreatePlaceRequest struct {
	Name    *string `json:"name" binding:"required,min=1,max=255"`
	CityID  *string `json:"city_id" binding:"required"`
	Address *string `json:"address" binding:"required,min=1,max=255"`
}

// ToPatch converts the request into a place patch
func (r *CreatePlaceRequest) ToPatch() domain.PlacePatch {
	return domain.PlacePatch{Name: r.Name, CityID: r.CityID, Address: r.Address}
}

// UpdatePlaceRequest represents the request to update a place
type UpdatePlaceRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	CityID  *string `json:"city_id"`
	Address *string `json:"address" binding:"omitempty,min=1,max=255"`
}

// ToPatch converts the request into a place patch
func (r *UpdatePlaceRequest) ToPatch() domain.PlacePatch {
	return domain.PlacePatch{Name: r.Name, CityID: r.CityID, Address: r.Address}
}

// PlaceResponse represents the response for a place
type PlaceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CityID    string `json:"city_id"`
	Address   string `json:"address"`
	HostID    string `json:"host_id"`
	CreatedAt string `json:"created_at"`
}

// ToPlaceResponse converts a place to its response
func ToPlaceResponse(place *domain.Place) *PlaceResponse {
	return &PlaceResponse{
		ID:        place.ID,
		Name:      place.Name,
		CityID:    place.CityID,
		Address:   place.Address,
		HostID:    place.HostID,
		CreatedAt: formatTime(place.CreatedAt),
	}
}

// ToPlaceResponses converts a list of places
func ToPlaceResponses(places []*domain.Place) []*PlaceResponse {
	out := make([]*PlaceResponse, len(places))
	for i, place := range places {
		out[i] = ToPlaceResponse(place)
	}
	return out
}
