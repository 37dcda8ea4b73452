package service

import (
	"context"
	"fmt"

	"github.com/jonah-kayiwa/yelp/internal/calculator"
	"github.com/jonah-kayiwa/yelp/internal/models"
)

// RestaurantLister loads every restaurant with its reviews resolved.
// storage.Store satisfies it.
type RestaurantLister interface {
	ListRestaurants(ctx context.Context) ([]*models.Restaurant, error)
}

// TopTwoRestaurants returns the two restaurants with the highest average star
// rating, best first. It returns fewer when fewer exist, and an empty slice
// when there are none.
func TopTwoRestaurants(ctx context.Context, lister RestaurantLister) ([]*models.Restaurant, error) {
	return TopRestaurants(ctx, lister, 2)
}

// TopRestaurants returns up to n restaurants ordered by average star rating
// descending. Equal averages keep ascending ID order.
//
// Ranking happens in memory over the full restaurant list.
func TopRestaurants(ctx context.Context, lister RestaurantLister, n int) ([]*models.Restaurant, error) {
	restaurants, err := lister.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	entries := make([]calculator.RankEntry, len(restaurants))
	for i, r := range restaurants {
		entries[i] = calculator.RankEntry{
			Index:   i,
			ID:      r.ID,
			Average: r.AverageStarRating(),
		}
	}

	ranked := calculator.Rank(entries, n)

	top := make([]*models.Restaurant, len(ranked))
	for i, e := range ranked {
		top[i] = restaurants[e.Index]
	}
	return top, nil
}
