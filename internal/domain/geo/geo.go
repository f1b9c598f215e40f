// Package geo implements great-circle proximity search over geocoded
// locations: a flat bounding-box prefilter followed by an exact spherical
// law of cosines distance, matching the classic SQL radius query
// (3956 * ACOS(...)) digit for digit.
package geo

import (
	"math"
	"sort"
)

// EarthRadiusMiles is the Earth radius used for great-circle distance.
const EarthRadiusMiles = 3956.0

// MilesPerDegreeLat is the flat-Earth approximation of one degree of
// latitude. Used only for the bounding-box prefilter, never for the
// distances returned to callers.
const MilesPerDegreeLat = 69.0

// DefaultRadiusMiles is the search radius applied when the caller does not
// specify one.
const DefaultRadiusMiles = 25.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Location is a stored point with its record identifier.
type Location struct {
	ID    string
	Point Point
}

// Candidate is a location that passed the radius check, with its exact
// great-circle distance from the search center.
type Candidate struct {
	ID            string
	DistanceMiles float64
}

// Stats counts how many locations each search stage saw.
type Stats struct {
	Scanned   int // total stored locations considered
	Prefilter int // survived the bounding box
	Matched   int // exact distance < radius
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance returns the great-circle distance in miles between two points
// using the spherical law of cosines:
//
//	d = R * acos( cos(lat1)*cos(lat2)*cos(lng2-lng1) + sin(lat1)*sin(lat2) )
func Distance(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLng := radians(b.Longitude) - radians(a.Longitude)

	cosine := math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLng) + math.Sin(lat1)*math.Sin(lat2)
	// Floating point noise can push the argument just outside [-1,1] for
	// identical or antipodal points, which would make Acos return NaN.
	if cosine > 1 {
		cosine = 1
	} else if cosine < -1 {
		cosine = -1
	}
	return EarthRadiusMiles * math.Acos(cosine)
}

// BoundingBox is a latitude/longitude rectangle.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoxAround returns the prefilter rectangle for a radius search:
// radius/69 degrees of latitude and radius/(69*cos(lat)) degrees of
// longitude on each side of the center. The box is deliberately loose:
// it may admit points the exact check rejects, but never excludes a
// point within the radius.
func BoxAround(center Point, radiusMiles float64) BoundingBox {
	latSpan := radiusMiles / MilesPerDegreeLat
	lngSpan := radiusMiles / (MilesPerDegreeLat * math.Cos(radians(center.Latitude)))
	lngSpan = math.Abs(lngSpan)

	return BoundingBox{
		MinLat: center.Latitude - latSpan,
		MaxLat: center.Latitude + latSpan,
		MinLng: center.Longitude - lngSpan,
		MaxLng: center.Longitude + lngSpan,
	}
}

// Contains reports whether the point falls inside the box (inclusive).
func (b BoundingBox) Contains(p Point) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLng && p.Longitude <= b.MaxLng
}

// Within returns the locations whose exact distance from center is
// strictly less than radiusMiles, sorted ascending by distance. Ties keep
// input order. A non-positive radius yields an empty result.
func Within(locations []Location, center Point, radiusMiles float64) ([]Candidate, Stats) {
	stats := Stats{Scanned: len(locations)}
	if radiusMiles <= 0 {
		return []Candidate{}, stats
	}

	box := BoxAround(center, radiusMiles)
	candidates := make([]Candidate, 0, len(locations))
	for _, loc := range locations {
		if !box.Contains(loc.Point) {
			continue
		}
		stats.Prefilter++
		d := Distance(center, loc.Point)
		if d < radiusMiles {
			candidates = append(candidates, Candidate{ID: loc.ID, DistanceMiles: d})
		}
	}
	stats.Matched = len(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceMiles < candidates[j].DistanceMiles
	})
	return candidates, stats
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
