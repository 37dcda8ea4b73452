package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// CreateRestaurant inserts a new restaurant into the database.
func (s *SQLiteStore) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = storage.NewID()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO restaurants (id, name) VALUES (?, ?)",
		restaurant.ID, restaurant.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

// GetRestaurant retrieves a restaurant by ID, including its reviews.
func (s *SQLiteStore) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM restaurants WHERE id = ?",
		restaurantID,
	).Scan(&restaurant.ID, &restaurant.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("restaurant %s: %w", restaurantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	restaurant.Reviews, err = s.ListReviewsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return restaurant, nil
}

// ListRestaurants retrieves all restaurants ordered by ID.
// Reviews are loaded with a single query and grouped in memory.
func (s *SQLiteStore) ListRestaurants(ctx context.Context) ([]*models.Restaurant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM restaurants ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	byID := make(map[string]*models.Restaurant)
	for rows.Next() {
		r := &models.Restaurant{}
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restaurants: %w", err)
	}
	rows.Close()

	reviews, err := s.queryReviews(ctx, "SELECT id, rating, customer_id, restaurant_id FROM reviews ORDER BY id")
	if err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		if r, ok := byID[rv.RestaurantID]; ok {
			r.Reviews = append(r.Reviews, rv)
		}
	}

	return restaurants, nil
}
