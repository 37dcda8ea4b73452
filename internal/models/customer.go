package models

// Customer represents a person who writes restaurant reviews.
type Customer struct {
	// ID is the unique identifier for the customer, assigned by the store on persist.
	ID string

	// FirstName is 1 to 25 characters.
	FirstName string

	// LastName is 1 to 25 characters.
	LastName string

	// Reviews are the reviews written by this customer.
	// Populated by the store; the customer does not own them.
	Reviews []Review
}

type customerInput struct {
	FirstName string `json:"first_name" validate:"min=1,max=25"`
	LastName  string `json:"last_name" validate:"min=1,max=25"`
}

var customerMessages = messages{
	"first_name": "first name must be a string between 1 and 25 characters",
	"last_name":  "last name must be a string between 1 and 25 characters",
}

// NewCustomer validates the names and builds a customer with no reviews.
// Length is counted in characters, not bytes.
func NewCustomer(firstName, lastName string) (*Customer, error) {
	in := customerInput{FirstName: firstName, LastName: lastName}
	if err := validateStruct(&in, customerMessages); err != nil {
		return nil, err
	}
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

// FullName returns "First Last".
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// NumNegativeReviews counts the customer's reviews rated 2 stars or lower.
func (c *Customer) NumNegativeReviews() int {
	negative := 0
	for _, review := range c.Reviews {
		if review.IsNegative() {
			negative++
		}
	}
	return negative
}

// HasReviewedRestaurant reports whether any of the customer's reviews is for
// the given restaurant. Restaurants are matched by ID, so an unsaved
// restaurant never matches.
func (c *Customer) HasReviewedRestaurant(restaurant *Restaurant) bool {
	if restaurant == nil || restaurant.ID == "" {
		return false
	}
	for _, review := range c.Reviews {
		if review.RestaurantID == restaurant.ID {
			return true
		}
	}
	return false
}
