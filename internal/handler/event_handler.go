package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/dto"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /event
func (h *EventHandler) List(c *gin.Context) {
	filter := service.EventListFilter{
		PlaceID:     c.Query("place_id"),
		HostID:      c.Query("host_id"),
		FilmWorkID:  c.Query("film_work_id"),
		EarlierThan: c.Query("earlier_than"),
		LaterThan:   c.Query("later_than"),
	}
	events, total, err := h.eventService.ListEvents(c.Request.Context(), filter, listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, dto.ToEventResponses(events), total)
}

// Get handles GET /event/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Create handles POST /event; the caller must host the place
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), actorFrom(c), *req.PlaceID, req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// Update handles PATCH /event/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), actorFrom(c), c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Delete handles DELETE /event/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
