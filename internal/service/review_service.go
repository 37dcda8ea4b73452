package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonah-kayiwa/yelp/internal/cache"
	"github.com/jonah-kayiwa/yelp/internal/metrics"
	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

const (
	// topTwoCacheKey prefixes the cached TopTwo result; the current
	// generation is appended.
	topTwoCacheKey = "ranking:top2:"

	// generationCacheKey holds the ranking generation. Every write that can
	// change the ranking replaces it, so a result computed before the write
	// is stored under a key nobody reads again.
	generationCacheKey = "ranking:generation"
)

// ReviewService coordinates validation, persistence and ranking for
// customers, restaurants and reviews.
type ReviewService struct {
	store   storage.Store
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// Option configures a ReviewService.
type Option func(*ReviewService)

// WithRankingCache caches TopTwo results for ttl. Writes that can change the
// ranking start a new cache generation.
func WithRankingCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *ReviewService) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithMetrics records ranking cache hits and misses.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ReviewService) {
		s.metrics = m
	}
}

// NewReviewService creates a ReviewService with the given storage backend.
func NewReviewService(store storage.Store, opts ...Option) *ReviewService {
	s := &ReviewService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterCustomer validates the names and persists a new customer.
func (s *ReviewService) RegisterCustomer(ctx context.Context, firstName, lastName string) (*models.Customer, error) {
	customer, err := models.NewCustomer(firstName, lastName)
	if err != nil {
		slog.Warn("RegisterCustomer rejected", "error", err)
		return nil, err
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		slog.Error("RegisterCustomer failed", "error", err)
		return nil, err
	}

	slog.Info("Customer registered", "customer_id", customer.ID, "name", customer.FullName())
	return customer, nil
}

// RegisterRestaurant validates the name and persists a new restaurant.
func (s *ReviewService) RegisterRestaurant(ctx context.Context, name string) (*models.Restaurant, error) {
	restaurant, err := models.NewRestaurant(name)
	if err != nil {
		slog.Warn("RegisterRestaurant rejected", "error", err)
		return nil, err
	}

	if err := s.store.CreateRestaurant(ctx, restaurant); err != nil {
		slog.Error("RegisterRestaurant failed", "error", err)
		return nil, err
	}
	s.invalidateRanking(ctx)

	slog.Info("Restaurant registered", "restaurant_id", restaurant.ID, "name", restaurant.Name)
	return restaurant, nil
}

// AddReview records a rating from a customer for a restaurant.
func (s *ReviewService) AddReview(ctx context.Context, customerID, restaurantID string, rating int) (*models.Review, error) {
	review, err := models.NewReview(customerID, restaurantID, rating)
	if err != nil {
		slog.Warn("AddReview rejected",
			"customer_id", customerID,
			"restaurant_id", restaurantID,
			"error", err,
		)
		return nil, err
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		slog.Error("AddReview failed",
			"customer_id", customerID,
			"restaurant_id", restaurantID,
			"error", err,
		)
		return nil, err
	}
	s.invalidateRanking(ctx)

	slog.Info("Review added",
		"review_id", review.ID,
		"customer_id", customerID,
		"restaurant_id", restaurantID,
		"rating", rating,
	)
	return review, nil
}

// Customer loads a customer with their reviews.
func (s *ReviewService) Customer(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		slog.Error("Customer lookup failed", "customer_id", customerID, "error", err)
		return nil, err
	}
	return customer, nil
}

// Restaurant loads a restaurant with its reviews.
func (s *ReviewService) Restaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	restaurant, err := s.store.GetRestaurant(ctx, restaurantID)
	if err != nil {
		slog.Error("Restaurant lookup failed", "restaurant_id", restaurantID, "error", err)
		return nil, err
	}
	return restaurant, nil
}

// TopTwo returns the two best rated restaurants, served from the ranking
// cache when one is configured.
func (s *ReviewService) TopTwo(ctx context.Context) ([]*models.Restaurant, error) {
	var key string
	if s.cache != nil {
		key = topTwoCacheKey + s.generation(ctx)

		var cached []*models.Restaurant
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			s.metrics.ObserveCacheLookup("hit")
			return cached, nil
		case errors.Is(err, cache.ErrCacheMiss):
			s.metrics.ObserveCacheLookup("miss")
		default:
			s.metrics.ObserveCacheLookup("error")
			slog.Warn("Ranking cache read failed", "error", err)
		}
	}

	top, err := TopTwoRestaurants(ctx, s.store)
	if err != nil {
		slog.Error("TopTwo failed", "error", err)
		return nil, fmt.Errorf("failed to rank restaurants: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, top, s.ttl); err != nil {
			slog.Warn("Ranking cache write failed", "error", err)
		}
	}
	return top, nil
}

// generation returns the current ranking generation, or "0" before the
// first write.
func (s *ReviewService) generation(ctx context.Context) string {
	var gen string
	if err := s.cache.Get(ctx, generationCacheKey, &gen); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("Ranking generation read failed", "error", err)
		}
		return "0"
	}
	return gen
}

// invalidateRanking starts a new generation. Results cached under older
// generations expire with their TTL.
func (s *ReviewService) invalidateRanking(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, generationCacheKey, storage.NewID(), 0); err != nil {
		slog.Warn("Ranking cache invalidation failed", "error", err)
	}
}
