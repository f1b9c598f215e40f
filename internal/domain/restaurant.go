package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Status values for published content. Only published records are visible
// on the public query surface.
const (
	StatusPublished = "publish"
	StatusDraft     = "draft"
)

// Geolocation is a latitude/longitude pair in degrees.
// It is stored and read as a unit: either both coordinates are present
// or the restaurant has no geolocation at all.
type Geolocation struct {
	Latitude  float64
	Longitude float64
}

// Address holds the opaque postal address fields of a restaurant.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Line renders the address as a single geocodable line: "street city, state zip".
func (a Address) Line() string {
	line := fmt.Sprintf("%s %s, %s %s", a.Street, a.City, a.State, a.Zip)
	return strings.Join(strings.Fields(line), " ")
}

// IsEmpty reports whether no address fields are set.
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.Zip == ""
}

// Restaurant is a published dining location. Geolocation is derived from
// the address by the geocoding side effect of a save and may be absent.
type Restaurant struct {
	id          string
	name        string
	slug        string
	description string
	address     Address
	geolocation *Geolocation
	status      string
}

// NewRestaurant validates and creates a Restaurant.
// Geolocation is never set here: it only appears via SetGeolocation after
// a successful geocoding pass.
func NewRestaurant(id, name, slug, description string, addr Address) (Restaurant, error) {
	if err := validateIdentity("restaurant", id, name, slug); err != nil {
		return Restaurant{}, err
	}
	return Restaurant{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		address:     addr,
		status:      StatusPublished,
	}, nil
}

// ReconstructRestaurant creates a Restaurant without validation (storage hydration).
func ReconstructRestaurant(
	id, name, slug, description string, addr Address, geo *Geolocation, status string,
) Restaurant {
	return Restaurant{
		id: id, name: name, slug: slug, description: description,
		address: addr, geolocation: geo, status: status,
	}
}

// ID returns the restaurant identifier.
func (r *Restaurant) ID() string { return r.id }

// Name returns the display name.
func (r *Restaurant) Name() string { return r.name }

// Slug returns the URL slug.
func (r *Restaurant) Slug() string { return r.slug }

// Description returns the description text.
func (r *Restaurant) Description() string { return r.description }

// Address returns the postal address fields.
func (r *Restaurant) Address() Address { return r.address }

// Geolocation returns the derived coordinates, or nil when geocoding has
// not (yet) succeeded for this record.
func (r *Restaurant) Geolocation() *Geolocation { return r.geolocation }

// Status returns the publication status.
func (r *Restaurant) Status() string { return r.status }

// Published reports whether the restaurant is publicly visible.
func (r *Restaurant) Published() bool { return r.status == StatusPublished }

// SetGeolocation stores the geocoded coordinates as a unit.
func (r *Restaurant) SetGeolocation(g Geolocation) { r.geolocation = &g }

// SetStatus overrides the publication status.
func (r *Restaurant) SetStatus(status string) { r.status = status }

func validateIdentity(kind, id, name, slug string) error {
	if id == "" {
		return fmt.Errorf("%s ID is required", kind)
	}
	if name == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if slug == "" {
		return fmt.Errorf("%s slug is required", kind)
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("%s slug %q must be lowercase alphanumeric with hyphens", kind, slug)
	}
	return nil
}
