package models

import "github.com/jonah-kayiwa/yelp/internal/calculator"

// Restaurant represents a place that receives reviews.
type Restaurant struct {
	// ID is the unique identifier for the restaurant, assigned by the store on persist.
	ID string

	// Name is the display name; at least one character.
	Name string

	// Reviews are the reviews this restaurant has received.
	// Populated by the store; the restaurant does not own them.
	Reviews []Review
}

type restaurantInput struct {
	Name string `json:"name" validate:"min=1"`
}

var restaurantMessages = messages{
	"name": "restaurant name must be a string with at least one character",
}

// NewRestaurant validates the name and builds a restaurant with no reviews.
func NewRestaurant(name string) (*Restaurant, error) {
	in := restaurantInput{Name: name}
	if err := validateStruct(&in, restaurantMessages); err != nil {
		return nil, err
	}
	return &Restaurant{Name: name}, nil
}

// AverageStarRating returns the mean rating rounded to one decimal place,
// or 0.0 when the restaurant has no reviews.
func (r *Restaurant) AverageStarRating() float64 {
	return calculator.AverageRating(ratings(r.Reviews))
}

// ReviewCount returns the number of reviews received.
func (r *Restaurant) ReviewCount() int {
	return len(r.Reviews)
}
