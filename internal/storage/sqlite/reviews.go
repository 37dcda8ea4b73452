package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// CreateReview persists a new review after checking that both the customer
// and the restaurant exist.
func (s *SQLiteStore) CreateReview(ctx context.Context, review *models.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkExists(ctx, tx, "customers", review.CustomerID); err != nil {
		return err
	}
	if err := checkExists(ctx, tx, "restaurants", review.RestaurantID); err != nil {
		return err
	}

	if review.ID == "" {
		review.ID = storage.NewID()
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO reviews (id, rating, customer_id, restaurant_id) VALUES (?, ?, ?, ?)",
		review.ID, review.Rating, review.CustomerID, review.RestaurantID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListReviewsByCustomer retrieves all reviews written by a customer.
func (s *SQLiteStore) ListReviewsByCustomer(ctx context.Context, customerID string) ([]models.Review, error) {
	return s.queryReviews(ctx,
		"SELECT id, rating, customer_id, restaurant_id FROM reviews WHERE customer_id = ? ORDER BY id",
		customerID,
	)
}

// ListReviewsByRestaurant retrieves all reviews received by a restaurant.
func (s *SQLiteStore) ListReviewsByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error) {
	return s.queryReviews(ctx,
		"SELECT id, rating, customer_id, restaurant_id FROM reviews WHERE restaurant_id = ? ORDER BY id",
		restaurantID,
	)
}

func (s *SQLiteStore) queryReviews(ctx context.Context, query string, args ...interface{}) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.CustomerID, &rv.RestaurantID); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// checkExists returns ErrInvalidReference when no row with id exists in table.
// table is always a constant from this package.
func checkExists(ctx context.Context, tx *sql.Tx, table, id string) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return nil
}
