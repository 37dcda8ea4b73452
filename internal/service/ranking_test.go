package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jonah-kayiwa/yelp/internal/models"
)

type listerFunc func(ctx context.Context) ([]*models.Restaurant, error)

func (f listerFunc) ListRestaurants(ctx context.Context) ([]*models.Restaurant, error) {
	return f(ctx)
}

func staticLister(restaurants ...*models.Restaurant) RestaurantLister {
	return listerFunc(func(context.Context) ([]*models.Restaurant, error) {
		return restaurants, nil
	})
}

func restaurantWithRatings(id string, ratings ...int) *models.Restaurant {
	r := &models.Restaurant{ID: id, Name: "Restaurant " + id}
	for _, rating := range ratings {
		r.Reviews = append(r.Reviews, models.Review{Rating: rating, RestaurantID: id})
	}
	return r
}

func ids(restaurants []*models.Restaurant) []string {
	out := make([]string, len(restaurants))
	for i, r := range restaurants {
		out[i] = r.ID
	}
	return out
}

func TestTopTwoRestaurants(t *testing.T) {
	tests := []struct {
		name        string
		restaurants []*models.Restaurant
		wantIDs     []string
		wantAvgs    []float64
	}{
		{
			name: "three restaurants",
			restaurants: []*models.Restaurant{
				restaurantWithRatings("a", 4, 5),
				restaurantWithRatings("b", 3),
				restaurantWithRatings("c", 5, 5),
			},
			wantIDs:  []string{"c", "a"},
			wantAvgs: []float64{5.0, 4.5},
		},
		{
			name:        "single restaurant",
			restaurants: []*models.Restaurant{restaurantWithRatings("a", 2)},
			wantIDs:     []string{"a"},
			wantAvgs:    []float64{2.0},
		},
		{
			name:        "no restaurants",
			restaurants: nil,
			wantIDs:     []string{},
			wantAvgs:    []float64{},
		},
		{
			name: "tie keeps lower id first",
			restaurants: []*models.Restaurant{
				restaurantWithRatings("b", 4),
				restaurantWithRatings("a", 4),
				restaurantWithRatings("c", 3),
			},
			wantIDs:  []string{"a", "b"},
			wantAvgs: []float64{4.0, 4.0},
		},
		{
			name: "unreviewed restaurant ranks as zero",
			restaurants: []*models.Restaurant{
				restaurantWithRatings("a"),
				restaurantWithRatings("b", 1),
			},
			wantIDs:  []string{"b", "a"},
			wantAvgs: []float64{1.0, 0.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopTwoRestaurants(context.Background(), staticLister(tt.restaurants...))
			if err != nil {
				t.Fatalf("TopTwoRestaurants() error = %v", err)
			}
			if got == nil {
				t.Fatal("TopTwoRestaurants() returned nil slice")
			}

			gotIDs := ids(got)
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("got %d restaurants %v, want %v", len(gotIDs), gotIDs, tt.wantIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("position %d: got %s, want %s", i, gotIDs[i], tt.wantIDs[i])
				}
				if avg := got[i].AverageStarRating(); avg != tt.wantAvgs[i] {
					t.Errorf("position %d: average %.1f, want %.1f", i, avg, tt.wantAvgs[i])
				}
			}
		})
	}
}

func TestTopTwoRestaurants_NonIncreasing(t *testing.T) {
	lister := staticLister(
		restaurantWithRatings("a", 1, 2),
		restaurantWithRatings("b", 5),
		restaurantWithRatings("c", 3, 4, 4),
		restaurantWithRatings("d", 5, 4),
	)

	got, err := TopTwoRestaurants(context.Background(), lister)
	if err != nil {
		t.Fatalf("TopTwoRestaurants() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d restaurants, want 2", len(got))
	}
	if got[0].AverageStarRating() < got[1].AverageStarRating() {
		t.Errorf("ranking not descending: %.1f then %.1f", got[0].AverageStarRating(), got[1].AverageStarRating())
	}
}

func TestTopRestaurants(t *testing.T) {
	lister := staticLister(
		restaurantWithRatings("a", 3),
		restaurantWithRatings("b", 5),
		restaurantWithRatings("c", 4),
	)

	got, err := TopRestaurants(context.Background(), lister, 5)
	if err != nil {
		t.Fatalf("TopRestaurants() error = %v", err)
	}
	want := []string{"b", "c", "a"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Errorf("position %d: got %s, want %s", i, id, want[i])
		}
	}

	none, err := TopRestaurants(context.Background(), lister, 0)
	if err != nil {
		t.Fatalf("TopRestaurants(0) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("TopRestaurants(0) returned %d restaurants", len(none))
	}
}

func TestTopTwoRestaurants_StorageError(t *testing.T) {
	boom := errors.New("database unavailable")
	lister := listerFunc(func(context.Context) ([]*models.Restaurant, error) {
		return nil, boom
	})

	got, err := TopTwoRestaurants(context.Background(), lister)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result on error, got %v", got)
	}
}

func TestTopTwoRestaurants_UnsavedRestaurants(t *testing.T) {
	best := &models.Restaurant{Name: "Best", Reviews: []models.Review{{Rating: 5}}}
	mid := &models.Restaurant{Name: "Mid", Reviews: []models.Review{{Rating: 3}}}
	worst := &models.Restaurant{Name: "Worst", Reviews: []models.Review{{Rating: 1}}}

	got, err := TopTwoRestaurants(context.Background(), staticLister(best, mid, worst))
	if err != nil {
		t.Fatalf("TopTwoRestaurants() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d restaurants, want 2", len(got))
	}
	if got[0] != best || got[1] != mid {
		t.Errorf("got [%s %s], want [Best Mid]", got[0].Name, got[1].Name)
	}
}
