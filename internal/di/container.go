package di

import (
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/client"
	"github.com/prohmpiriya/cinema-booking/internal/handler"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/service"
	"github.com/prohmpiriya/cinema-booking/pkg/config"
	"github.com/prohmpiriya/cinema-booking/pkg/database"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
	"github.com/prohmpiriya/cinema-booking/pkg/middleware"
	"github.com/prohmpiriya/cinema-booking/pkg/redis"
)

// Container holds all dependencies for the booking service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client
	Tx    repository.Transactor

	// Upstream clients
	IdentityClient *client.IdentityClient
	FilmClient     *client.FilmClient
	UserInfoClient *client.UserInfoClient

	// Repositories
	CityRepo      repository.CityRepository
	PlaceRepo     repository.PlaceRepository
	EventRepo     repository.EventRepository
	BookingRepo   repository.BookingRepository
	BlacklistRepo repository.BlacklistRepository

	// Services
	CityService      service.CityService
	PlaceService     service.PlaceService
	EventService     service.EventService
	BookingService   service.BookingService
	BlacklistService service.BlacklistService
	HostService      service.HostService

	// Handlers
	Handlers *handler.Handlers
	Guards   handler.Guards
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	// Redis is optional; without it cities are not cached and
	// idempotency keys are ignored
	Redis  *redis.Client
	Logger *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	appCfg := cfg.Config
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
		Tx:    repository.NewPgxTransactor(cfg.DB.Pool()),
	}

	// Initialize upstream clients
	timeout := client.WithTimeout(appCfg.Upstream.Timeout)
	c.IdentityClient = client.NewIdentityClient(appCfg.Upstream.AuthHost, appCfg.Upstream.GetUserHost, timeout)
	c.FilmClient = client.NewFilmClient(appCfg.Upstream.GetFilmHost, timeout)
	c.UserInfoClient = client.NewUserInfoClient(appCfg.Upstream.GetUsersInfoHost, appCfg.Upstream.NumberOfTries, timeout)

	// Initialize repositories
	pool := c.DB.Pool()
	pgCityRepo := repository.NewPostgresCityRepository(pool)

	// Wrap with cache if Redis is available
	if c.Redis != nil {
		c.CityRepo = repository.NewCachedCityRepository(pgCityRepo, c.Redis, appCfg.Cache.CityTTL)
	} else {
		c.CityRepo = pgCityRepo
	}
	c.PlaceRepo = repository.NewPostgresPlaceRepository(pool)
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.BookingRepo = repository.NewPostgresBookingRepository(pool)
	c.BlacklistRepo = repository.NewPostgresBlacklistRepository(pool)

	// Initialize services
	settings := service.Settings{
		PageSize:         appCfg.Booking.PageSize,
		DateLayout:       appCfg.Booking.DateFormat,
		FilterDateLayout: appCfg.Booking.FilterDateFormat,
		Now:              time.Now,
	}
	log := cfg.Logger
	c.CityService = service.NewCityService(c.CityRepo, c.Tx, settings, log)
	c.PlaceService = service.NewPlaceService(c.PlaceRepo, c.CityRepo, c.Tx, settings, log)
	c.EventService = service.NewEventService(c.EventRepo, c.PlaceRepo, c.CityRepo, c.BookingRepo, c.FilmClient, c.Tx, settings, log)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.EventRepo, c.BlacklistRepo, c.Tx, settings, log)
	c.BlacklistService = service.NewBlacklistService(c.BlacklistRepo, c.IdentityClient, c.Tx, settings, log)
	c.HostService = service.NewHostService(c.PlaceRepo, c.CityRepo, c.BookingRepo, c.UserInfoClient, settings, log)

	// Initialize handlers
	checks := map[string]handler.HealthChecker{"database": c.DB, "redis": nil}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}
	c.Handlers = &handler.Handlers{
		Health:    handler.NewHealthHandler(checks),
		City:      handler.NewCityHandler(c.CityService),
		Place:     handler.NewPlaceHandler(c.PlaceService),
		Event:     handler.NewEventHandler(c.EventService),
		Booking:   handler.NewBookingHandler(c.BookingService),
		Blacklist: handler.NewBlacklistHandler(c.BlacklistService),
		Host:      handler.NewHostHandler(c.HostService),
	}

	auth := &middleware.AuthConfig{Secret: appCfg.JWT.Secret, Verifier: c.IdentityClient}
	c.Guards = handler.Guards{
		Authenticate:     middleware.Authenticate(auth),
		RequireSuperuser: middleware.RequireSuperuser(auth),
	}
	if c.Redis != nil {
		idem := middleware.DefaultIdempotencyConfig(c.Redis)
		if appCfg.Cache.IdempotencyTTL > 0 {
			idem.TTL = appCfg.Cache.IdempotencyTTL
		}
		c.Guards.Idempotency = middleware.Idempotency(idem)
	}

	return c
}
