package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/dto"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// BlacklistHandler handles block list HTTP requests
type BlacklistHandler struct {
	blacklistService service.BlacklistService
}

// NewBlacklistHandler creates a new BlacklistHandler
func NewBlacklistHandler(blacklistService service.BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{blacklistService: blacklistService}
}

// List handles GET /black_list (superuser only)
func (h *BlacklistHandler) List(c *gin.Context) {
	h.list(c, repository.BlacklistFilter{HostID: c.Query("host_id")})
}

// ListMy handles GET /black_list/my
func (h *BlacklistHandler) ListMy(c *gin.Context) {
	h.list(c, repository.BlacklistFilter{HostID: actorFrom(c).UserID})
}

func (h *BlacklistHandler) list(c *gin.Context, filter repository.BlacklistFilter) {
	entries, total, err := h.blacklistService.ListBlockEntries(c.Request.Context(), filter, listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, dto.ToBlockEntryResponses(entries), total)
}

// Get handles GET /black_list/:id
func (h *BlacklistHandler) Get(c *gin.Context) {
	entry, err := h.blacklistService.GetBlockEntry(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBlockEntryResponse(entry))
}

// Create handles POST /black_list; the caller is the blocking host
func (h *BlacklistHandler) Create(c *gin.Context) {
	var req dto.CreateBlockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.blacklistService.CreateBlockEntry(c.Request.Context(), actorFrom(c), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBlockEntryResponse(entry))
}

// Delete handles DELETE /black_list/:id
func (h *BlacklistHandler) Delete(c *gin.Context) {
	if err := h.blacklistService.DeleteBlockEntry(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
