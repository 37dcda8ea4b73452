package storage

import (
	"context"
	"time"

	"github.com/jonah-kayiwa/yelp/internal/metrics"
	"github.com/jonah-kayiwa/yelp/internal/models"
)

// Ensure instrumentedStore implements Store
var _ Store = (*instrumentedStore)(nil)

// instrumentedStore records Prometheus metrics around every call to the wrapped Store.
type instrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

// Instrumented wraps store so each operation is counted and timed.
func Instrumented(store Store, m *metrics.Metrics) Store {
	return &instrumentedStore{next: store, metrics: m}
}

func (s *instrumentedStore) CreateCustomer(ctx context.Context, customer *models.Customer) (err error) {
	defer s.observe("create_customer", time.Now(), &err)
	return s.next.CreateCustomer(ctx, customer)
}

func (s *instrumentedStore) GetCustomer(ctx context.Context, customerID string) (c *models.Customer, err error) {
	defer s.observe("get_customer", time.Now(), &err)
	return s.next.GetCustomer(ctx, customerID)
}

func (s *instrumentedStore) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) (err error) {
	defer s.observe("create_restaurant", time.Now(), &err)
	return s.next.CreateRestaurant(ctx, restaurant)
}

func (s *instrumentedStore) GetRestaurant(ctx context.Context, restaurantID string) (r *models.Restaurant, err error) {
	defer s.observe("get_restaurant", time.Now(), &err)
	return s.next.GetRestaurant(ctx, restaurantID)
}

func (s *instrumentedStore) ListRestaurants(ctx context.Context) (rs []*models.Restaurant, err error) {
	defer s.observe("list_restaurants", time.Now(), &err)
	return s.next.ListRestaurants(ctx)
}

func (s *instrumentedStore) CreateReview(ctx context.Context, review *models.Review) (err error) {
	defer s.observe("create_review", time.Now(), &err)
	return s.next.CreateReview(ctx, review)
}

func (s *instrumentedStore) ListReviewsByCustomer(ctx context.Context, customerID string) (rs []models.Review, err error) {
	defer s.observe("list_reviews_by_customer", time.Now(), &err)
	return s.next.ListReviewsByCustomer(ctx, customerID)
}

func (s *instrumentedStore) ListReviewsByRestaurant(ctx context.Context, restaurantID string) (rs []models.Review, err error) {
	defer s.observe("list_reviews_by_restaurant", time.Now(), &err)
	return s.next.ListReviewsByRestaurant(ctx, restaurantID)
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}

// observe runs deferred, so err points at the named result after the call returns.
func (s *instrumentedStore) observe(operation string, started time.Time, err *error) {
	s.metrics.ObserveStoreOperation(operation, started, *err)
}
