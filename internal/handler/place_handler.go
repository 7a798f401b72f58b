package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/dto"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// PlaceHandler handles place-related HTTP requests
type PlaceHandler struct {
	placeService service.PlaceService
}

// NewPlaceHandler creates a new PlaceHandler
func NewPlaceHandler(placeService service.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// List handles GET /place
func (h *PlaceHandler) List(c *gin.Context) {
	filter := repository.PlaceFilter{
		CityID: c.Query("city_id"),
		HostID: c.Query("host_id"),
	}
	places, total, err := h.placeService.ListPlaces(c.Request.Context(), filter, listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, dto.ToPlaceResponses(places), total)
}

// Get handles GET /place/:id
func (h *PlaceHandler) Get(c *gin.Context) {
	place, err := h.placeService.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlaceResponse(place))
}

// Create handles POST /place; the caller becomes the host
func (h *PlaceHandler) Create(c *gin.Context) {
	var req dto.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	place, err := h.placeService.CreatePlace(c.Request.Context(), actorFrom(c), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlaceResponse(place))
}

// Update handles PATCH /place/:id
func (h *PlaceHandler) Update(c *gin.Context) {
	var req dto.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	place, err := h.placeService.UpdatePlace(c.Request.Context(), actorFrom(c), c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlaceResponse(place))
}

// Delete handles DELETE /place/:id
func (h *PlaceHandler) Delete(c *gin.Context) {
	if err := h.placeService.DeletePlace(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
