// Package postgres provides a PostgreSQL implementation of the storage.Store
// interface built on sqlx and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    first_name VARCHAR(25) NOT NULL,
    last_name VARCHAR(25) NOT NULL
);

CREATE TABLE IF NOT EXISTS restaurants (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
    id TEXT PRIMARY KEY,
    rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    customer_id TEXT NOT NULL REFERENCES customers(id),
    restaurant_id TEXT NOT NULL REFERENCES restaurants(id)
);

CREATE INDEX IF NOT EXISTS idx_reviews_customer_id ON reviews(customer_id);
CREATE INDEX IF NOT EXISTS idx_reviews_restaurant_id ON reviews(restaurant_id);
`

type customerRow struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

type restaurantRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type reviewRow struct {
	ID           string `db:"id"`
	Rating       int    `db:"rating"`
	CustomerID   string `db:"customer_id"`
	RestaurantID string `db:"restaurant_id"`
}

func (r reviewRow) toModel() models.Review {
	return models.Review{
		ID:           r.ID,
		Rating:       r.Rating,
		CustomerID:   r.CustomerID,
		RestaurantID: r.RestaurantID,
	}
}

// Store implements storage.Store on PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// New connects to dsn, verifies the connection and creates missing tables.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres")
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping postgres")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}

	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection. The schema is assumed to exist.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateCustomer inserts a new customer.
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = storage.NewID()
	}

	query := `
		INSERT INTO customers (id, first_name, last_name)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, customer.ID, customer.FirstName, customer.LastName); err != nil {
		return errors.Wrap(mapError(err), "failed to create customer")
	}
	return nil
}

// GetCustomer retrieves a customer by ID with its reviews.
func (s *Store) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name
		FROM customers
		WHERE id = $1
	`

	var row customerRow
	if err := s.db.GetContext(ctx, &row, query, customerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Wrapf(storage.ErrNotFound, "customer %s", customerID)
		}
		return nil, errors.Wrap(err, "failed to get customer")
	}

	reviews, err := s.ListReviewsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &models.Customer{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Reviews:   reviews,
	}, nil
}

// CreateRestaurant inserts a new restaurant.
func (s *Store) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = storage.NewID()
	}

	query := `
		INSERT INTO restaurants (id, name)
		VALUES ($1, $2)
	`
	if _, err := s.db.ExecContext(ctx, query, restaurant.ID, restaurant.Name); err != nil {
		return errors.Wrap(mapError(err), "failed to create restaurant")
	}
	return nil
}

// GetRestaurant retrieves a restaurant by ID with its reviews.
func (s *Store) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	query := `
		SELECT id, name
		FROM restaurants
		WHERE id = $1
	`

	var row restaurantRow
	if err := s.db.GetContext(ctx, &row, query, restaurantID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Wrapf(storage.ErrNotFound, "restaurant %s", restaurantID)
		}
		return nil, errors.Wrap(err, "failed to get restaurant")
	}

	reviews, err := s.ListReviewsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &models.Restaurant{ID: row.ID, Name: row.Name, Reviews: reviews}, nil
}

// ListRestaurants retrieves all restaurants ordered by ID, each with its reviews.
func (s *Store) ListRestaurants(ctx context.Context) ([]*models.Restaurant, error) {
	query := `
		SELECT id, name
		FROM restaurants
		ORDER BY id
	`

	var rows []restaurantRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to list restaurants")
	}

	reviews, err := s.selectReviews(ctx, `
		SELECT id, rating, customer_id, restaurant_id
		FROM reviews
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}

	byRestaurant := make(map[string][]models.Review)
	for _, rv := range reviews {
		byRestaurant[rv.RestaurantID] = append(byRestaurant[rv.RestaurantID], rv)
	}

	restaurants := make([]*models.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, &models.Restaurant{
			ID:      row.ID,
			Name:    row.Name,
			Reviews: byRestaurant[row.ID],
		})
	}
	return restaurants, nil
}

// CreateReview inserts a review. Foreign key violations map to ErrInvalidReference.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = storage.NewID()
	}

	query := `
		INSERT INTO reviews (id, rating, customer_id, restaurant_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, review.ID, review.Rating, review.CustomerID, review.RestaurantID)
	if err != nil {
		return errors.Wrap(mapError(err), "failed to create review")
	}
	return nil
}

// ListReviewsByCustomer retrieves a customer's reviews ordered by ID.
func (s *Store) ListReviewsByCustomer(ctx context.Context, customerID string) ([]models.Review, error) {
	return s.selectReviews(ctx, `
		SELECT id, rating, customer_id, restaurant_id
		FROM reviews
		WHERE customer_id = $1
		ORDER BY id
	`, customerID)
}

// ListReviewsByRestaurant retrieves a restaurant's reviews ordered by ID.
func (s *Store) ListReviewsByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error) {
	return s.selectReviews(ctx, `
		SELECT id, rating, customer_id, restaurant_id
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY id
	`, restaurantID)
}

func (s *Store) selectReviews(ctx context.Context, query string, args ...interface{}) ([]models.Review, error) {
	var rows []reviewRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.toModel())
	}
	return reviews, nil
}

// mapError converts PostgreSQL constraint errors into storage sentinels.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return errors.Wrapf(storage.ErrInvalidReference, "%s", pgErr.ConstraintName)
	case pgUniqueViolation:
		return errors.Wrapf(err, "duplicate key %s", pgErr.ConstraintName)
	default:
		return err
	}
}
