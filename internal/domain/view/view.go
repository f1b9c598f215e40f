// Package view defines the public output shapes of the query API and the
// assembly functions that build them from domain entities. The field set
// is fixed: "restaurant" is always present (null when unlinked), "address"
// is omitted entirely when the restaurant has no geolocation, and empty
// collections render as [] rather than null.
package view

import "github.com/battlebranding/food-scout/internal/domain"

// AddressView carries the geocoded coordinates of a restaurant.
type AddressView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RestaurantView is the public shape of a restaurant.
type RestaurantView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	FoodCount   int          `json:"food_count"`
	Address     *AddressView `json:"address,omitempty"`
}

// FoodView is the public shape of a food item with its resolved
// restaurant and taste terms embedded.
type FoodView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Cost        string          `json:"cost"`
	Restaurant  *RestaurantView `json:"restaurant"`
	Taste       []TasteView     `json:"taste"`
}

// TasteView is the public shape of a taste taxonomy term.
// Type is reserved for future taxonomy subtypes and is always empty.
type TasteView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Count       int    `json:"count"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Restaurant assembles a RestaurantView. foodCount is computed by the
// caller at assembly time, never read from storage.
func Restaurant(r *domain.Restaurant, foodCount int) RestaurantView {
	v := RestaurantView{
		ID:          r.ID(),
		Name:        r.Name(),
		Slug:        r.Slug(),
		Description: r.Description(),
		FoodCount:   foodCount,
	}
	if g := r.Geolocation(); g != nil {
		v.Address = &AddressView{Latitude: g.Latitude, Longitude: g.Longitude}
	}
	return v
}

// Food assembles a FoodView. restaurant may be nil for unlinked items,
// which renders as restaurant: null. A nil taste slice renders as [].
func Food(f *domain.Food, restaurant *RestaurantView, taste []TasteView) FoodView {
	if taste == nil {
		taste = []TasteView{}
	}
	return FoodView{
		ID:          f.ID(),
		Name:        f.Name(),
		Slug:        f.Slug(),
		Description: f.Description(),
		Cost:        domain.PlaceholderCost,
		Restaurant:  restaurant,
		Taste:       taste,
	}
}

// Taste assembles a TasteView. count is the term usage count (number of
// food items carrying the term).
func Taste(t *domain.Taste, count int) TasteView {
	return TasteView{
		ID:          t.ID(),
		Name:        t.Name(),
		Slug:        t.Slug(),
		Count:       count,
		Description: t.Description(),
		Type:        "",
	}
}
