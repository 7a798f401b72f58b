package dto

import "github.com/prohmpiriya/cinema-booking/internal/domain"

// CreateCityRequest represents the request to create a new city
type CreateCityRequest struct {
	Name     *string `json:"name" binding:"required,min=1,max=255"`
	Timezone *string `json:"timezone" binding:"required"`
}

// ToPatch converts the request into a city patch
func (r *CreateCityRequest) ToPatch() domain.CityPatch {
	return domain.CityPatch{Name: r.Name, Timezone: r.Timezone}
}

// UpdateCityRequest represents the request to update a city.
// Absent fields keep their stored value.
type UpdateCityRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Timezone *string `json:"timezone"`
}

// ToPatch converts the request into a city patch
func (r *UpdateCityRequest) ToPatch() domain.CityPatch {
	return domain.CityPatch{Name: r.Name, Timezone: r.Timezone}
}

// CityResponse represents the response for a city
type CityResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	CreatedAt string `json:"created_at"`
}

// ToCityResponse converts a city to its response
func ToCityResponse(city *domain.City) *CityResponse {
	return &CityResponse{
		ID:        city.ID,
		Name:      city.Name,
		Timezone:  city.Timezone,
		CreatedAt: formatTime(city.CreatedAt),
	}
}

// ToCityResponses converts a list of cities
func ToCityResponses(cities []*domain.City) []*CityResponse {
	out := make([]*CityResponse, len(cities))
	for i, city := range cities {
		out[i] = ToCityResponse(city)
	}
	return out
}
