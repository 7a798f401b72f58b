package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/pkg/metrics"
)

// Handlers groups the HTTP handlers of the API
type Handlers struct {
	Health    *HealthHandler
	City      *CityHandler
	Place     *PlaceHandler
	Event     *EventHandler
	Booking   *BookingHandler
	Blacklist *BlacklistHandler
	Host      *HostHandler
}

// Guards are the per-route middlewares. Idempotency may be nil.
type Guards struct {
	Authenticate     gin.HandlerFunc
	RequireSuperuser gin.HandlerFunc
	Idempotency      gin.HandlerFunc
}

// RegisterRoutes mounts the probes, the metrics endpoint and /api/v1
func RegisterRoutes(router *gin.Engine, h *Handlers, g Guards) {
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")

	city := v1.Group("/city")
	{
		city.GET("", h.City.List)
		city.GET("/:id", h.City.Get)

		admin := city.Group("", g.Authenticate, g.RequireSuperuser)
		admin.POST("", h.City.Create)
		admin.PATCH("/:id", h.City.Update)
		admin.DELETE("/:id", h.City.Delete)
	}

	place := v1.Group("/place")
	{
		place.GET("", h.Place.List)
		place.GET("/:id", h.Place.Get)

		protected := place.Group("", g.Authenticate)
		protected.POST("", h.Place.Create)
		protected.PATCH("/:id", h.Place.Update)
		protected.DELETE("/:id", h.Place.Delete)
	}

	event := v1.Group("/event")
	{
		event.GET("", h.Event.List)
		event.GET("/:id", h.Event.Get)

		protected := event.Group("", g.Authenticate)
		protected.POST("", h.Event.Create)
		protected.PATCH("/:id", h.Event.Update)
		protected.DELETE("/:id", h.Event.Delete)
	}

	booking := v1.Group("/booking")
	{
		booking.GET("", h.Booking.List)

		protected := booking.Group("", g.Authenticate)
		protected.GET("/my", h.Booking.ListMy) // Must be before /:id

		create := []gin.HandlerFunc{h.Booking.Create}
		if g.Idempotency != nil {
			create = append([]gin.HandlerFunc{g.Idempotency}, create...)
		}
		protected.POST("", create...)
		protected.PATCH("/:id", h.Booking.Update)
		protected.DELETE("/:id", h.Booking.Delete)

		booking.GET("/:id", h.Booking.Get)
	}

	blacklist := v1.Group("/black_list", g.Authenticate)
	{
		blacklist.GET("", g.RequireSuperuser, h.Blacklist.List)
		blacklist.GET("/my", h.Blacklist.ListMy)
		blacklist.POST("", h.Blacklist.Create)
		blacklist.GET("/:id", h.Blacklist.Get)
		blacklist.DELETE("/:id", h.Blacklist.Delete)
	}

	host := v1.Group("/host")
	{
		host.GET("", h.Host.List)
		host.GET("/my", g.Authenticate, h.Host.ListMy)
	}
}
