package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// HostHandler handles host aggregation requests
type HostHandler struct {
	hostService service.HostService
}

// NewHostHandler creates a new HostHandler
func NewHostHandler(hostService service.HostService) *HostHandler {
	return &HostHandler{hostService: hostService}
}

// List handles GET /host
func (h *HostHandler) List(c *gin.Context) {
	h.list(c, false)
}

// ListMy handles GET /host/my: hosts of events the caller booked
func (h *HostHandler) ListMy(c *gin.Context) {
	h.list(c, true)
}

func (h *HostHandler) list(c *gin.Context, mine bool) {
	filter := service.HostListFilter{CityID: c.Query("city_id"), Mine: mine}
	hosts, total, err := h.hostService.ListHosts(c.Request.Context(), actorFrom(c), filter, listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.List(c, hosts, total)
}
