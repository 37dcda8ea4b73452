// Package memory provides an in-memory implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps customers, restaurants and reviews in maps.
// It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	customers   map[string]models.Customer
	restaurants map[string]models.Restaurant
	reviews     map[string]models.Review
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		customers:   make(map[string]models.Customer),
		restaurants: make(map[string]models.Restaurant),
		reviews:     make(map[string]models.Review),
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// CreateCustomer stores a copy of the customer without its reviews.
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	_ = ctx
	if customer.ID == "" {
		customer.ID = storage.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; ok {
		return fmt.Errorf("customer already exists: %s", customer.ID)
	}
	s.customers[customer.ID] = models.Customer{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
	}
	return nil
}

// GetCustomer retrieves a customer by ID with its reviews.
func (s *Store) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", customerID, storage.ErrNotFound)
	}
	c.Reviews = s.reviewsWhere(func(r models.Review) bool { return r.CustomerID == customerID })
	return &c, nil
}

// CreateRestaurant stores a copy of the restaurant without its reviews.
func (s *Store) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	_ = ctx
	if restaurant.ID == "" {
		restaurant.ID = storage.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[restaurant.ID]; ok {
		return fmt.Errorf("restaurant already exists: %s", restaurant.ID)
	}
	s.restaurants[restaurant.ID] = models.Restaurant{
		ID:   restaurant.ID,
		Name: restaurant.Name,
	}
	return nil
}

// GetRestaurant retrieves a restaurant by ID with its reviews.
func (s *Store) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[restaurantID]
	if !ok {
		return nil, fmt.Errorf("restaurant %s: %w", restaurantID, storage.ErrNotFound)
	}
	r.Reviews = s.reviewsWhere(func(rv models.Review) bool { return rv.RestaurantID == restaurantID })
	return &r, nil
}

// ListRestaurants returns all restaurants ordered by ID.
func (s *Store) ListRestaurants(ctx context.Context) ([]*models.Restaurant, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRestaurant := make(map[string][]models.Review)
	for _, rv := range s.sortedReviews() {
		byRestaurant[rv.RestaurantID] = append(byRestaurant[rv.RestaurantID], rv)
	}

	out := make([]*models.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		r := r
		r.Reviews = byRestaurant[r.ID]
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateReview stores a review after checking both references exist.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[review.CustomerID]; !ok {
		return fmt.Errorf("customer %s: %w", review.CustomerID, storage.ErrInvalidReference)
	}
	if _, ok := s.restaurants[review.RestaurantID]; !ok {
		return fmt.Errorf("restaurant %s: %w", review.RestaurantID, storage.ErrInvalidReference)
	}

	if review.ID == "" {
		review.ID = storage.NewID()
	}
	if _, ok := s.reviews[review.ID]; ok {
		return fmt.Errorf("review already exists: %s", review.ID)
	}
	s.reviews[review.ID] = *review
	return nil
}

// ListReviewsByCustomer returns a customer's reviews ordered by ID.
func (s *Store) ListReviewsByCustomer(ctx context.Context, customerID string) ([]models.Review, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewsWhere(func(r models.Review) bool { return r.CustomerID == customerID }), nil
}

// ListReviewsByRestaurant returns a restaurant's reviews ordered by ID.
func (s *Store) ListReviewsByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewsWhere(func(r models.Review) bool { return r.RestaurantID == restaurantID }), nil
}

// reviewsWhere filters reviews; callers must hold s.mu.
func (s *Store) reviewsWhere(keep func(models.Review) bool) []models.Review {
	out := make([]models.Review, 0)
	for _, r := range s.sortedReviews() {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) sortedReviews() []models.Review {
	out := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
