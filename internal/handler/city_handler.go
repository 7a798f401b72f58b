package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/dto"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// CityHandler handles city-related HTTP requests
type CityHandler struct {
	cityService service.CityService
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cityService service.CityService) *CityHandler {
	return &CityHandler{cityService: cityService}
}

// List handles GET /city
func (h *CityHandler) List(c *gin.Context) {
	cities, total, err := h.cityService.ListCities(c.Request.Context(), listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, dto.ToCityResponses(cities), total)
}

// Get handles GET /city/:id
func (h *CityHandler) Get(c *gin.Context) {
	city, err := h.cityService.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCityResponse(city))
}

// Create handles POST /city (superuser only)
func (h *CityHandler) Create(c *gin.Context) {
	var req dto.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	city, err := h.cityService.CreateCity(c.Request.Context(), actorFrom(c), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCityResponse(city))
}

// Update handles PATCH /city/:id (superuser only)
func (h *CityHandler) Update(c *gin.Context) {
	var req dto.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	city, err := h.cityService.UpdateCity(c.Request.Context(), actorFrom(c), c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCityResponse(city))
}

// Delete handles DELETE /city/:id (superuser only)
func (h *CityHandler) Delete(c *gin.Context) {
	if err := h.cityService.DeleteCity(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
