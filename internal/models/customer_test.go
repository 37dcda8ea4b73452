package models

import (
	"errors"
	"strings"
	"testing"
)

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		wantErr   bool
		wantField string
	}{
		{name: "valid names", firstName: "Ada", lastName: "Lovelace"},
		{name: "single character names", firstName: "A", lastName: "B"},
		{name: "25 character names", firstName: strings.Repeat("a", 25), lastName: strings.Repeat("b", 25)},
		{name: "25 multibyte characters", firstName: strings.Repeat("é", 25), lastName: "Ng"},
		{name: "empty first name", firstName: "", lastName: "Lovelace", wantErr: true, wantField: "first_name"},
		{name: "empty last name", firstName: "Ada", lastName: "", wantErr: true, wantField: "last_name"},
		{name: "26 character first name", firstName: strings.Repeat("a", 26), lastName: "Lovelace", wantErr: true, wantField: "first_name"},
		{name: "26 character last name", firstName: "Ada", lastName: strings.Repeat("b", 26), wantErr: true, wantField: "last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.firstName, tt.lastName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCustomer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if ve.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
				}
				if !errors.Is(err, ErrValidation) {
					t.Error("expected errors.Is(err, ErrValidation)")
				}
				return
			}
			if c.FirstName != tt.firstName || c.LastName != tt.lastName {
				t.Errorf("names stored as %q %q, want %q %q", c.FirstName, c.LastName, tt.firstName, tt.lastName)
			}
			if c.ID != "" {
				t.Errorf("expected empty ID before persist, got %q", c.ID)
			}
			if len(c.Reviews) != 0 {
				t.Errorf("expected no reviews, got %d", len(c.Reviews))
			}
		})
	}
}

func TestCustomer_NumNegativeReviews(t *testing.T) {
	c := &Customer{Reviews: []Review{{Rating: 5}, {Rating: 1}, {Rating: 2}, {Rating: 4}}}
	if got := c.NumNegativeReviews(); got != 2 {
		t.Errorf("NumNegativeReviews() = %d, want 2", got)
	}

	empty := &Customer{}
	if got := empty.NumNegativeReviews(); got != 0 {
		t.Errorf("NumNegativeReviews() on no reviews = %d, want 0", got)
	}
}

func TestCustomer_HasReviewedRestaurant(t *testing.T) {
	reviewed := &Restaurant{ID: "r1", Name: "Noma"}
	other := &Restaurant{ID: "r2", Name: "Noma"}
	unsaved := &Restaurant{Name: "Noma"}

	c := &Customer{Reviews: []Review{
		{Rating: 4, RestaurantID: "r1"},
		{Rating: 2, RestaurantID: "r3"},
	}}

	if !c.HasReviewedRestaurant(reviewed) {
		t.Error("expected true for reviewed restaurant")
	}
	if c.HasReviewedRestaurant(other) {
		t.Error("expected false for a different restaurant with the same name")
	}
	if c.HasReviewedRestaurant(unsaved) {
		t.Error("expected false for an unsaved restaurant")
	}
	if c.HasReviewedRestaurant(nil) {
		t.Error("expected false for nil restaurant")
	}
}

func TestCustomer_FullName(t *testing.T) {
	c, err := NewCustomer("Ada", "Lovelace")
	if err != nil {
		t.Fatalf("NewCustomer failed: %v", err)
	}
	if got := c.FullName(); got != "Ada Lovelace" {
		t.Errorf("FullName() = %q", got)
	}
}

func TestCustomer_NumNegativeReviewsMatchesIsNegative(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		review := Review{Rating: rating}
		c := &Customer{Reviews: []Review{review, review}}

		want := 0
		if review.IsNegative() {
			want = 2
		}
		if got := c.NumNegativeReviews(); got != want {
			t.Errorf("rating %d: NumNegativeReviews() = %d, want %d", rating, got, want)
		}
	}
}
