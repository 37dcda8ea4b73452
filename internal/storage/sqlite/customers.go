package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// CreateCustomer inserts a new customer into the database.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = storage.NewID()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO customers (id, first_name, last_name) VALUES (?, ?, ?)",
		customer.ID, customer.FirstName, customer.LastName,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetCustomer retrieves a customer by ID, including the reviews they wrote.
func (s *SQLiteStore) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	customer := &models.Customer{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name FROM customers WHERE id = ?",
		customerID,
	).Scan(&customer.ID, &customer.FirstName, &customer.LastName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %s: %w", customerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.Reviews, err = s.ListReviewsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return customer, nil
}
