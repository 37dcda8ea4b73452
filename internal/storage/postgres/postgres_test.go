package postgres

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonah-kayiwa/yelp/internal/models"
	"github.com/jonah-kayiwa/yelp/internal/storage"
	"github.com/jonah-kayiwa/yelp/internal/storage/storetest"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

func q(query string) string {
	return regexp.QuoteMeta(query)
}

var reviewColumns = []string{"id", "rating", "customer_id", "restaurant_id"}

func TestStore_CreateCustomer(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		mock.ExpectExec(q("INSERT INTO customers (id, first_name, last_name) VALUES ($1, $2, $3)")).
			WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace").
			WillReturnResult(sqlmock.NewResult(0, 1))

		c := &models.Customer{FirstName: "Ada", LastName: "Lovelace"}
		err := store.CreateCustomer(ctx, c)
		assert.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectExec(q("INSERT INTO customers")).
			WithArgs("c1", "Ada", "Lovelace").
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "customers_pkey"})

		err := store.CreateCustomer(ctx, &models.Customer{ID: "c1", FirstName: "Ada", LastName: "Lovelace"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "customers_pkey")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_GetCustomer(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(q("SELECT id, first_name, last_name FROM customers WHERE id = $1")).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
				AddRow("c1", "Ada", "Lovelace"))
		mock.ExpectQuery(q("FROM reviews WHERE customer_id = $1 ORDER BY id")).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(reviewColumns).
				AddRow("v1", 1, "c1", "r1").
				AddRow("v2", 4, "c1", "r2"))

		got, err := store.GetCustomer(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.FirstName)
		assert.Len(t, got.Reviews, 2)
		assert.Equal(t, 1, got.NumNegativeReviews())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(q("FROM customers WHERE id = $1")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}))

		got, err := store.GetCustomer(ctx, "missing")
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_GetRestaurant(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(q("SELECT id, name FROM restaurants WHERE id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("r1", "Noma"))
	mock.ExpectQuery(q("FROM reviews WHERE restaurant_id = $1 ORDER BY id")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(reviewColumns).
			AddRow("v1", 5, "c1", "r1").
			AddRow("v2", 4, "c2", "r1"))

	got, err := store.GetRestaurant(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Noma", got.Name)
	assert.Equal(t, 4.5, got.AverageStarRating())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRestaurants(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("groups reviews by restaurant", func(t *testing.T) {
		mock.ExpectQuery(q("SELECT id, name FROM restaurants ORDER BY id")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow("r1", "Noma").
				AddRow("r2", "Zuni Cafe"))
		mock.ExpectQuery(q("SELECT id, rating, customer_id, restaurant_id FROM reviews ORDER BY id")).
			WillReturnRows(sqlmock.NewRows(reviewColumns).
				AddRow("v1", 5, "c1", "r2").
				AddRow("v2", 3, "c1", "r1").
				AddRow("v3", 4, "c2", "r2"))

		got, err := store.ListRestaurants(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "r1", got[0].ID)
		assert.Len(t, got[0].Reviews, 1)
		assert.Len(t, got[1].Reviews, 2)
		assert.Equal(t, 4.5, got[1].AverageStarRating())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(q("FROM restaurants ORDER BY id")).
			WillReturnError(errors.New("connection reset"))

		got, err := store.ListRestaurants(ctx)
		assert.Nil(t, got)
		assert.ErrorContains(t, err, "failed to list restaurants")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_CreateReview(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(q("INSERT INTO reviews (id, rating, customer_id, restaurant_id) VALUES ($1, $2, $3, $4)")).
			WithArgs(sqlmock.AnyArg(), 4, "c1", "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		review := &models.Review{Rating: 4, CustomerID: "c1", RestaurantID: "r1"}
		assert.NoError(t, store.CreateReview(ctx, review))
		assert.NotEmpty(t, review.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation", func(t *testing.T) {
		mock.ExpectExec(q("INSERT INTO reviews")).
			WithArgs(sqlmock.AnyArg(), 3, "c1", "missing").
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "reviews_restaurant_id_fkey"})

		err := store.CreateReview(ctx, &models.Review{Rating: 3, CustomerID: "c1", RestaurantID: "missing"})
		assert.True(t, errors.Is(err, storage.ErrInvalidReference))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNew_RequiresDSN(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.Error(t, err)
}

// TestContract runs against a live database when YELP_TEST_PG_DSN is set.
func TestContract(t *testing.T) {
	dsn := os.Getenv("YELP_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("YELP_TEST_PG_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) (storage.Store, func()) {
		ctx := context.Background()
		store, err := New(ctx, dsn)
		require.NoError(t, err)

		_, err = store.db.ExecContext(ctx, "TRUNCATE reviews, customers, restaurants")
		require.NoError(t, err)

		return store, func() { store.Close() }
	})
}
