package models

// NegativeRatingThreshold is the highest rating that still counts as negative.
const NegativeRatingThreshold = 2

// Review is the join record between a Customer and a Restaurant.
// It owns the foreign keys; neither side holds a pointer back to it.
type Review struct {
	// ID is the unique identifier for the review, assigned by the store.
	ID string

	// Rating is the star rating, 1 through 5.
	Rating int

	// CustomerID references the customer who wrote the review.
	CustomerID string

	// RestaurantID references the restaurant being reviewed.
	RestaurantID string
}

type reviewInput struct {
	CustomerID   string `json:"customer_id" validate:"required"`
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
}

var reviewMessages = messages{
	"customer_id":   "customer reference is required",
	"restaurant_id": "restaurant reference is required",
	"rating":        "rating must be between 1 and 5",
}

// NewReview validates and builds a review linking a customer to a restaurant.
func NewReview(customerID, restaurantID string, rating int) (*Review, error) {
	in := reviewInput{CustomerID: customerID, RestaurantID: restaurantID, Rating: rating}
	if err := validateStruct(&in, reviewMessages); err != nil {
		return nil, err
	}
	return &Review{
		Rating:       rating,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
	}, nil
}

// IsNegative reports whether the review is a one or two star review.
func (r Review) IsNegative() bool {
	return r.Rating <= NegativeRatingThreshold
}

// ratings extracts the rating values from a review list.
func ratings(reviews []Review) []int {
	out := make([]int, len(reviews))
	for i, r := range reviews {
		out[i] = r.Rating
	}
	return out
}
