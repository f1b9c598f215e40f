package domain

import "context"

// Geocoder resolves a postal address line to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Geolocation, error)
}
