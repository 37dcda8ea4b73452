package storage

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string. Later calls sort after earlier
// ones, so ORDER BY id doubles as insertion order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}
