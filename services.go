package foodscout

import (
	"context"
	"fmt"

	fooduc "github.com/battlebranding/food-scout/internal/usecase/food"
	restaurantuc "github.com/battlebranding/food-scout/internal/usecase/restaurant"
	tasteuc "github.com/battlebranding/food-scout/internal/usecase/taste"
)

// RestaurantService lists and administers restaurants.
type RestaurantService struct {
	svc *restaurantuc.Service
}

// List returns all published restaurants.
func (s *RestaurantService) List(ctx context.Context) ([]Restaurant, error) {
	views, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	out := make([]Restaurant, len(views))
	for i, v := range views {
		out[i] = restaurantFromView(v)
	}
	return out, nil
}

// Save creates or updates a restaurant. The address is geocoded in the
// background; coordinates appear on a later read.
func (s *RestaurantService) Save(ctx context.Context, in SaveRestaurant) (Restaurant, error) {
	v, err := s.svc.Save(ctx, restaurantuc.SaveInput{
		ID:          in.ID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Address:     in.Address.toDomain(),
		Status:      in.Status,
	})
	if err != nil {
		return Restaurant{}, fmt.Errorf("save restaurant: %w", err)
	}
	return restaurantFromView(v), nil
}

// Delete removes a restaurant. Its food items survive unlinked.
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

// FoodService searches and administers food items.
type FoodService struct {
	svc *fooduc.Service
}

// Search returns published food matching the query, ranked by
// restaurant distance when coordinates are present.
func (s *FoodService) Search(ctx context.Context, q FoodQuery) ([]Food, error) {
	views, err := s.svc.Search(ctx, fooduc.Query{
		Latitude:    q.Latitude,
		Longitude:   q.Longitude,
		RadiusMiles: q.RadiusMiles,
		TasteSlug:   q.TasteSlug,
	})
	if err != nil {
		return nil, fmt.Errorf("search food: %w", err)
	}
	out := make([]Food, len(views))
	for i, v := range views {
		out[i] = foodFromView(v)
	}
	return out, nil
}

// Save creates or updates a food item and syncs its restaurant link.
func (s *FoodService) Save(ctx context.Context, in SaveFood) (Food, error) {
	v, err := s.svc.Save(ctx, fooduc.SaveInput{
		ID:           in.ID,
		Name:         in.Name,
		Slug:         in.Slug,
		Description:  in.Description,
		TasteSlugs:   in.Taste,
		RestaurantID: in.RestaurantID,
		Status:       in.Status,
	})
	if err != nil {
		return Food{}, fmt.Errorf("save food: %w", err)
	}
	return foodFromView(v), nil
}

// Delete removes a food item and its restaurant link.
func (s *FoodService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

// TasteService searches and administers taste terms.
type TasteService struct {
	svc *tasteuc.Service
}

// Search returns terms whose name or slug contains the query. A blank
// query matches nothing.
func (s *TasteService) Search(ctx context.Context, query string) ([]Taste, error) {
	views, err := s.svc.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search tastes: %w", err)
	}
	out := make([]Taste, len(views))
	for i, v := range views {
		out[i] = tasteFromView(v)
	}
	return out, nil
}

// Save creates or updates a taste term.
func (s *TasteService) Save(ctx context.Context, in SaveTaste) (Taste, error) {
	v, err := s.svc.Save(ctx, tasteuc.SaveInput{
		ID:          in.ID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if err != nil {
		return Taste{}, fmt.Errorf("save taste: %w", err)
	}
	return tasteFromView(v), nil
}

// Delete removes a taste term.
func (s *TasteService) Delete(ctx context.Context, slug string) error {
	if err := s.svc.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete taste: %w", err)
	}
	return nil
}
