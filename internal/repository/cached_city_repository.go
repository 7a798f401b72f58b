package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/pkg/redis"
)

const (
	cityDetailKeyPrefix = "city:detail:"

	// Default TTL for city caches
	defaultCityCacheTTL = 5 * time.Minute
)

// CachedCityRepository wraps CityRepository with a Redis detail cache.
// Cities are read on every event mutation and render to resolve the timezone.
type CachedCityRepository struct {
	CityRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedCityRepository creates a new CachedCityRepository
func NewCachedCityRepository(repo CityRepository, cache *redis.Client, ttl time.Duration) *CachedCityRepository {
	if ttl <= 0 {
		ttl = defaultCityCacheTTL
	}
	return &CachedCityRepository{
		CityRepository: repo,
		cache:          cache,
		ttl:            ttl,
	}
}

// GetByID retrieves a city by ID with caching
func (r *CachedCityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	cacheKey := cityDetailKeyPrefix + id
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var city domain.City
		if err := json.Unmarshal([]byte(cached), &city); err == nil {
			return &city, nil
		}
	}

	// Cache miss - get from database
	city, err := r.CityRepository.GetByID(ctx, id)
	if err != nil || city == nil {
		return city, err
	}

	// Rows read inside a transaction may still be rolled back
	if !InTx(ctx) {
		r.cacheCity(ctx, cacheKey, city)
	}
	return city, nil
}

// Update updates a city and invalidates its cache entry once the write commits
func (r *CachedCityRepository) Update(ctx context.Context, city *domain.City) error {
	if err := r.CityRepository.Update(ctx, city); err != nil {
		return err
	}
	r.invalidate(ctx, city.ID)
	return nil
}

// Delete deletes a city and invalidates its cache entry once the write commits
func (r *CachedCityRepository) Delete(ctx context.Context, id string) error {
	if err := r.CityRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedCityRepository) cacheCity(ctx context.Context, key string, city *domain.City) {
	data, err := json.Marshal(city)
	if err != nil {
		return
	}
	r.cache.Set(ctx, key, string(data), r.ttl)
}

func (r *CachedCityRepository) invalidate(ctx context.Context, id string) {
	AfterCommit(ctx, func(ctx context.Context) {
		r.cache.Del(ctx, cityDetailKeyPrefix+id)
	})
}
