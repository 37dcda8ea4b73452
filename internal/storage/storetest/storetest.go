// Package storetest holds the contract suite every storage.Store backend must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// Factory returns a fresh, empty store and an optional cleanup func.
type Factory func(t *testing.T) (storage.Store, func())

// Run executes the contract suite. Every subtest gets its own store.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"CustomerRoundTrip", testCustomerRoundTrip},
		{"RestaurantRoundTrip", testRestaurantRoundTrip},
		{"GetMissingReturnsNotFound", testGetMissing},
		{"ReviewsResolvedOnBothSides", testReviewsResolved},
		{"ReviewRejectsUnknownReferences", testReviewInvalidReference},
		{"ListRestaurantsOrderedWithReviews", testListRestaurants},
		{"ListRestaurantsEmpty", testListRestaurantsEmpty},
		{"DerivedStatisticsAfterReload", testDerivedStatistics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cleanup := newStore(t)
			if cleanup != nil {
				defer cleanup()
			}
			tt.fn(t, s)
		})
	}
}

func mustCustomer(t *testing.T, s storage.Store, first, last string) *models.Customer {
	t.Helper()
	c, err := models.NewCustomer(first, last)
	require.NoError(t, err)
	require.NoError(t, s.CreateCustomer(context.Background(), c))
	require.NotEmpty(t, c.ID)
	return c
}

func mustRestaurant(t *testing.T, s storage.Store, name string) *models.Restaurant {
	t.Helper()
	r, err := models.NewRestaurant(name)
	require.NoError(t, err)
	require.NoError(t, s.CreateRestaurant(context.Background(), r))
	require.NotEmpty(t, r.ID)
	return r
}

func mustReview(t *testing.T, s storage.Store, c *models.Customer, r *models.Restaurant, rating int) *models.Review {
	t.Helper()
	rv, err := models.NewReview(c.ID, r.ID, rating)
	require.NoError(t, err)
	require.NoError(t, s.CreateReview(context.Background(), rv))
	require.NotEmpty(t, rv.ID)
	return rv
}

func testCustomerRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := mustCustomer(t, s, "Ada", "Lovelace")

	got, err := s.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Empty(t, got.Reviews)
}

func testRestaurantRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	r := mustRestaurant(t, s, "Chez Panisse")

	got, err := s.GetRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "Chez Panisse", got.Name)
	assert.Empty(t, got.Reviews)
}

func testGetMissing(t *testing.T, s storage.Store) {
	ctx := context.Background()

	_, err := s.GetCustomer(ctx, "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound), "GetCustomer: got %v", err)

	_, err = s.GetRestaurant(ctx, "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound), "GetRestaurant: got %v", err)
}

func testReviewsResolved(t *testing.T, s storage.Store) {
	ctx := context.Background()
	alice := mustCustomer(t, s, "Alice", "Adams")
	bob := mustCustomer(t, s, "Bob", "Brown")
	noma := mustRestaurant(t, s, "Noma")
	elbulli := mustRestaurant(t, s, "El Bulli")

	first := mustReview(t, s, alice, noma, 5)
	second := mustReview(t, s, alice, elbulli, 2)
	mustReview(t, s, bob, noma, 4)

	byAlice, err := s.ListReviewsByCustomer(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byAlice, 2)
	assert.Equal(t, first.ID, byAlice[0].ID)
	assert.Equal(t, second.ID, byAlice[1].ID)

	forNoma, err := s.ListReviewsByRestaurant(ctx, noma.ID)
	require.NoError(t, err)
	require.Len(t, forNoma, 2)
	for _, rv := range forNoma {
		assert.Equal(t, noma.ID, rv.RestaurantID)
	}

	gotAlice, err := s.GetCustomer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, gotAlice.Reviews, 2)

	gotNoma, err := s.GetRestaurant(ctx, noma.ID)
	require.NoError(t, err)
	assert.Len(t, gotNoma.Reviews, 2)

	none, err := s.ListReviewsByCustomer(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testReviewInvalidReference(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := mustCustomer(t, s, "Ada", "Lovelace")
	r := mustRestaurant(t, s, "Noma")

	err := s.CreateReview(ctx, &models.Review{Rating: 3, CustomerID: "missing", RestaurantID: r.ID})
	assert.True(t, errors.Is(err, storage.ErrInvalidReference), "unknown customer: got %v", err)

	err = s.CreateReview(ctx, &models.Review{Rating: 3, CustomerID: c.ID, RestaurantID: "missing"})
	assert.True(t, errors.Is(err, storage.ErrInvalidReference), "unknown restaurant: got %v", err)

	reviews, err := s.ListReviewsByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func testListRestaurants(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := mustCustomer(t, s, "Ada", "Lovelace")
	first := mustRestaurant(t, s, "Zuni Cafe")
	second := mustRestaurant(t, s, "Acquerello")
	mustReview(t, s, c, second, 5)
	mustReview(t, s, c, second, 4)

	got, err := s.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID, "ordered by id, not name")
	assert.Equal(t, second.ID, got[1].ID)
	assert.Empty(t, got[0].Reviews)
	assert.Len(t, got[1].Reviews, 2)
}

func testListRestaurantsEmpty(t *testing.T, s storage.Store) {
	got, err := s.ListRestaurants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testDerivedStatistics(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := mustCustomer(t, s, "Ada", "Lovelace")
	noma := mustRestaurant(t, s, "Noma")
	other := mustRestaurant(t, s, "Other")
	for _, rating := range []int{5, 1, 2, 4} {
		mustReview(t, s, c, noma, rating)
	}

	gotC, err := s.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotC.NumNegativeReviews())
	assert.True(t, gotC.HasReviewedRestaurant(noma))
	assert.False(t, gotC.HasReviewedRestaurant(other))

	gotR, err := s.GetRestaurant(ctx, noma.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, gotR.AverageStarRating(), 1e-9)
}
