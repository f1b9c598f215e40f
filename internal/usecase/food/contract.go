package food

import (
	"context"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/geo"
)

// Repository defines the storage contract for food items.
type Repository interface {
	Save(ctx context.Context, f *domain.Food) error
	Get(ctx context.Context, id string) (domain.Food, error)
	GetMulti(ctx context.Context, ids []string) ([]domain.Food, error)
	ListPublished(ctx context.Context) ([]domain.Food, error)
	Delete(ctx context.Context, id string) error
}

// RestaurantReader reads restaurants for embedding into food results.
type RestaurantReader interface {
	Get(ctx context.Context, id string) (domain.Restaurant, error)
	GetMulti(ctx context.Context, ids []string) ([]domain.Restaurant, error)
	Locations(ctx context.Context) ([]geo.Location, error)
}

// Relations reads and edits the food-to-restaurant edges.
type Relations interface {
	Link(ctx context.Context, foodID, restaurantID string) error
	Unlink(ctx context.Context, foodID string) error
	RestaurantForFood(ctx context.Context, foodID string) (string, error)
	FoodIDsForRestaurants(ctx context.Context, restaurantIDs []string) ([]string, error)
	FoodCount(ctx context.Context, restaurantID string) (int, error)
	FoodCounts(ctx context.Context, restaurantIDs []string) ([]int, error)
}

// TasteReader reads taste terms for embedding into food results.
type TasteReader interface {
	GetMulti(ctx context.Context, slugs []string) ([]domain.Taste, error)
	UsageCounts(ctx context.Context, slugs []string) ([]int, error)
}
