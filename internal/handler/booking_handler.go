package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/dto"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List handles GET /booking
func (h *BookingHandler) List(c *gin.Context) {
	filter := repository.BookingFilter{
		EventID: c.Query("event_id"),
		UserID:  c.Query("user_id"),
		HostID:  c.Query("host_id"),
	}
	h.list(c, filter)
}

// ListMy handles GET /booking/my
func (h *BookingHandler) ListMy(c *gin.Context) {
	filter := repository.BookingFilter{
		EventID: c.Query("event_id"),
		UserID:  actorFrom(c).UserID,
	}
	h.list(c, filter)
}

func (h *BookingHandler) list(c *gin.Context, filter repository.BookingFilter) {
	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), filter, listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, dto.ToBookingResponses(bookings), total)
}

// Get handles GET /booking/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// Create handles POST /booking; the caller takes the ticket
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), actorFrom(c), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// Update handles PATCH /booking/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), actorFrom(c), c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// Delete handles DELETE /booking/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingService.DeleteBooking(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
