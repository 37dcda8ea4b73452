// Package gormstore implements storage.Store with GORM over SQLite.
//
// Tables are created by AutoMigrate from the record types in records.go.
// Review collections are loaded with Preload, ordered by review ID.
//
// The GORM sqlite dialector runs on the pure-Go modernc.org/sqlite driver,
// so the store builds and runs with CGO_ENABLED=0.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
)

// driverName is the modernc.org/sqlite driver name. The dialector's default,
// "sqlite3", is the cgo mattn driver.
const driverName = "sqlite"

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using GORM.
type Store struct {
	db *gorm.DB
}

// New opens (or creates) the SQLite database at dbPath and migrates the schema.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dialector := &sqlite.Dialector{
		DriverName: driverName,
		DSN:        dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&customerRecord{}, &restaurantRecord{}, &reviewRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func orderedReviews(db *gorm.DB) *gorm.DB {
	return db.Order("reviews.id")
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = storage.NewID()
	}
	rec := customerRecord{ID: customer.ID, FirstName: customer.FirstName, LastName: customer.LastName}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	var rec customerRecord
	err := s.db.WithContext(ctx).
		Preload("Reviews", orderedReviews).
		First(&rec, "id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("customer %s: %w", customerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return rec.toModel(), nil
}

func (s *Store) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = storage.NewID()
	}
	rec := restaurantRecord{ID: restaurant.ID, Name: restaurant.Name}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

func (s *Store) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	var rec restaurantRecord
	err := s.db.WithContext(ctx).
		Preload("Reviews", orderedReviews).
		First(&rec, "id = ?", restaurantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("restaurant %s: %w", restaurantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return rec.toModel(), nil
}

func (s *Store) ListRestaurants(ctx context.Context) ([]*models.Restaurant, error) {
	var recs []restaurantRecord
	err := s.db.WithContext(ctx).
		Preload("Reviews", orderedReviews).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	restaurants := make([]*models.Restaurant, len(recs))
	for i, rec := range recs {
		restaurants[i] = rec.toModel()
	}
	return restaurants, nil
}

// CreateReview checks both references inside a transaction before inserting.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = storage.NewID()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &customerRecord{}, review.CustomerID); err != nil {
			return err
		}
		if err := exists(tx, &restaurantRecord{}, review.RestaurantID); err != nil {
			return err
		}

		rec := reviewRecord{
			ID:           review.ID,
			Rating:       review.Rating,
			CustomerID:   review.CustomerID,
			RestaurantID: review.RestaurantID,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
}

func exists(tx *gorm.DB, model interface{ TableName() string }, id string) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check %s: %w", model.TableName(), err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", model.TableName(), id, storage.ErrInvalidReference)
	}
	return nil
}

func (s *Store) ListReviewsByCustomer(ctx context.Context, customerID string) ([]models.Review, error) {
	return s.findReviews(ctx, "customer_id = ?", customerID)
}

func (s *Store) ListReviewsByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error) {
	return s.findReviews(ctx, "restaurant_id = ?", restaurantID)
}

func (s *Store) findReviews(ctx context.Context, cond string, id string) ([]models.Review, error) {
	var recs []reviewRecord
	if err := s.db.WithContext(ctx).Where(cond, id).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	reviews := toReviews(recs)
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
