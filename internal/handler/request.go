package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/middleware"
)

// actorFrom builds the caller from what the auth middlewares stored
func actorFrom(c *gin.Context) service.Actor {
	userID, _ := middleware.GetUserID(c)
	return service.Actor{
		UserID:        userID,
		Authorization: middleware.GetAuthorization(c),
		IsSuperuser:   middleware.IsSuperuser(c),
	}
}

// listRequest reads the sorting and page query parameters
func listRequest(c *gin.Context) service.ListRequest {
	return service.ListRequest{
		Sorting: c.QueryArray("sorting"),
		Page:    c.Query("page"),
	}
}
