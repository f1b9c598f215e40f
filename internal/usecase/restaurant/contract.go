package restaurant

import (
	"context"

	"github.com/battlebranding/food-scout/internal/domain"
)

// Repository defines the storage contract for restaurants.
type Repository interface {
	Save(ctx context.Context, r *domain.Restaurant) error
	Get(ctx context.Context, id string) (domain.Restaurant, error)
	ListPublished(ctx context.Context) ([]domain.Restaurant, error)
	SetGeolocation(ctx context.Context, id string, g domain.Geolocation) error
	Delete(ctx context.Context, id string) error
}

// Relations reads and edits the food edges of a restaurant.
type Relations interface {
	FoodCounts(ctx context.Context, restaurantIDs []string) ([]int, error)
	FoodIDsForRestaurants(ctx context.Context, restaurantIDs []string) ([]string, error)
	Unlink(ctx context.Context, foodID string) error
}
