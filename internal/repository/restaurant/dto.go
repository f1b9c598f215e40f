package restaurant

import (
	"strconv"

	"github.com/battlebranding/food-scout/internal/domain"
)

// Hash field names. Coordinates are written only by SetGeolocation so a
// record either carries both or neither.
const (
	fieldName        = "name"
	fieldSlug        = "slug"
	fieldDescription = "description"
	fieldStreet      = "street"
	fieldCity        = "city"
	fieldState       = "state"
	fieldZip         = "zip"
	fieldStatus      = "status"
	fieldLat         = "lat"
	fieldLng         = "lng"
)

func restaurantToHash(r *domain.Restaurant) map[string]string {
	addr := r.Address()
	return map[string]string{
		fieldName:        r.Name(),
		fieldSlug:        r.Slug(),
		fieldDescription: r.Description(),
		fieldStreet:      addr.Street,
		fieldCity:        addr.City,
		fieldState:       addr.State,
		fieldZip:         addr.Zip,
		fieldStatus:      r.Status(),
	}
}

func restaurantFromHash(id string, m map[string]string) domain.Restaurant {
	addr := domain.Address{
		Street: m[fieldStreet],
		City:   m[fieldCity],
		State:  m[fieldState],
		Zip:    m[fieldZip],
	}

	status := m[fieldStatus]
	if status == "" {
		status = domain.StatusDraft
	}

	return domain.ReconstructRestaurant(
		id, m[fieldName], m[fieldSlug], m[fieldDescription],
		addr, parseGeolocation(m), status,
	)
}

// parseGeolocation returns coordinates only when both fields parse.
// A half-written or corrupt pair reads as "no geolocation".
func parseGeolocation(m map[string]string) *domain.Geolocation {
	latStr, okLat := m[fieldLat]
	lngStr, okLng := m[fieldLng]
	if !okLat || !okLng {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	return &domain.Geolocation{Latitude: lat, Longitude: lng}
}
