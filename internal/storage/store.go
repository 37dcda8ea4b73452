// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/jonah-kayiwa/yelp/internal/models"
)

var (
	// ErrNotFound is returned when a customer or restaurant ID does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a review points at a customer or
	// restaurant that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// Store defines the interface for customer, restaurant and review storage.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL, GORM)
// without changing the service layer.
//
// Reviews collections on returned customers and restaurants are resolved by
// the store through ListReviewsByCustomer / ListReviewsByRestaurant.
type Store interface {
	// CreateCustomer persists a new customer.
	// The customer.ID field will be populated by the store when empty.
	CreateCustomer(ctx context.Context, customer *models.Customer) error

	// GetCustomer retrieves a customer by ID with its reviews.
	// Returns ErrNotFound if the customer does not exist.
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)

	// CreateRestaurant persists a new restaurant.
	// The restaurant.ID field will be populated by the store when empty.
	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error

	// GetRestaurant retrieves a restaurant by ID with its reviews.
	// Returns ErrNotFound if the restaurant does not exist.
	GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error)

	// ListRestaurants returns every restaurant, ordered by ID, each with its reviews.
	ListRestaurants(ctx context.Context) ([]*models.Restaurant, error)

	// CreateReview persists a new review.
	// Returns ErrInvalidReference if the customer or restaurant does not exist.
	CreateReview(ctx context.Context, review *models.Review) error

	// ListReviewsByCustomer returns the reviews written by a customer, ordered by ID.
	ListReviewsByCustomer(ctx context.Context, customerID string) ([]models.Review, error)

	// ListReviewsByRestaurant returns the reviews received by a restaurant, ordered by ID.
	ListReviewsByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error)

	// Close releases any resources held by the store.
	Close() error
}
