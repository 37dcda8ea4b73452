package gormstore

import "github.com/jonah-kayiwa/yelp/internal/models"

// customerRecord maps the customers table.
type customerRecord struct {
	ID        string         `gorm:"primaryKey"`
	FirstName string         `gorm:"size:25;not null"`
	LastName  string         `gorm:"size:25;not null"`
	Reviews   []reviewRecord `gorm:"foreignKey:CustomerID"`
}

func (customerRecord) TableName() string { return "customers" }

// restaurantRecord maps the restaurants table.
type restaurantRecord struct {
	ID      string         `gorm:"primaryKey"`
	Name    string         `gorm:"not null"`
	Reviews []reviewRecord `gorm:"foreignKey:RestaurantID"`
}

func (restaurantRecord) TableName() string { return "restaurants" }

// reviewRecord maps the reviews table.
type reviewRecord struct {
	ID           string `gorm:"primaryKey"`
	Rating       int    `gorm:"not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5"`
	CustomerID   string `gorm:"not null;index"`
	RestaurantID string `gorm:"not null;index"`
}

func (reviewRecord) TableName() string { return "reviews" }

func toReviews(records []reviewRecord) []models.Review {
	if len(records) == 0 {
		return nil
	}
	reviews := make([]models.Review, len(records))
	for i, r := range records {
		reviews[i] = models.Review{
			ID:           r.ID,
			Rating:       r.Rating,
			CustomerID:   r.CustomerID,
			RestaurantID: r.RestaurantID,
		}
	}
	return reviews
}

func (c customerRecord) toModel() *models.Customer {
	return &models.Customer{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Reviews:   toReviews(c.Reviews),
	}
}

func (r restaurantRecord) toModel() *models.Restaurant {
	return &models.Restaurant{
		ID:      r.ID,
		Name:    r.Name,
		Reviews: toReviews(r.Reviews),
	}
}
