package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

// statusFor maps an error kind to its HTTP status
func statusFor(kind domain.Kind) int {
	switch kind {
	case "":
		return http.StatusInternalServerError
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindPersistence:
		return http.StatusInternalServerError
	case domain.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// respondError writes err as {"status": <message>, "code": <kind>}
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := domain.KindOf(err)
	if kind == "" {
		c.JSON(http.StatusInternalServerError, response.InternalError("internal error"))
		return
	}
	c.JSON(statusFor(kind), response.Error(string(kind), domain.MessageOf(err)))
}

// respondBindError rejects a body that does not decode or misses required fields
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorWithDetails(response.ErrCodeBadRequest, "Invalid request body", err.Error()))
}
