package foodscout

import (
	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/view"
)

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Address is a street address, the input to geocoding.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Restaurant is a published restaurant with its food count and, once
// geocoded, its location.
type Restaurant struct {
	ID          string
	Name        string
	Slug        string
	Description string
	FoodCount   int
	Location    *Location
}

// Taste is a taxonomy term with its usage count.
type Taste struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Count       int
}

// Food is a menu item with its resolved restaurant and taste terms.
// Restaurant is nil for unlinked items.
type Food struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Cost        string
	Restaurant  *Restaurant
	Taste       []Taste
}

// FoodQuery carries food search parameters. Nil coordinates run a plain
// listing; a nil radius falls back to the client default.
type FoodQuery struct {
	Latitude    *float64
	Longitude   *float64
	RadiusMiles *float64
	TasteSlug   string
}

// SaveRestaurant carries the writable fields of a restaurant.
type SaveRestaurant struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Address     Address
	Status      string
}

// SaveFood carries the writable fields of a food item. An empty
// RestaurantID detaches the item.
type SaveFood struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	Taste        []string
	RestaurantID string
	Status       string
}

// SaveTaste carries the writable fields of a taste term.
type SaveTaste struct {
	ID          string
	Name        string
	Slug        string
	Description string
}

func restaurantFromView(v view.RestaurantView) Restaurant {
	r := Restaurant{
		ID:          v.ID,
		Name:        v.Name,
		Slug:        v.Slug,
		Description: v.Description,
		FoodCount:   v.FoodCount,
	}
	if v.Address != nil {
		r.Location = &Location{Latitude: v.Address.Latitude, Longitude: v.Address.Longitude}
	}
	return r
}

func tasteFromView(v view.TasteView) Taste {
	return Taste{
		ID:          v.ID,
		Name:        v.Name,
		Slug:        v.Slug,
		Description: v.Description,
		Count:       v.Count,
	}
}

func foodFromView(v view.FoodView) Food {
	f := Food{
		ID:          v.ID,
		Name:        v.Name,
		Slug:        v.Slug,
		Description: v.Description,
		Cost:        v.Cost,
		Taste:       make([]Taste, 0, len(v.Taste)),
	}
	if v.Restaurant != nil {
		r := restaurantFromView(*v.Restaurant)
		f.Restaurant = &r
	}
	for _, t := range v.Taste {
		f.Taste = append(f.Taste, tasteFromView(t))
	}
	return f
}

func (a Address) toDomain() domain.Address {
	return domain.Address{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip}
}
