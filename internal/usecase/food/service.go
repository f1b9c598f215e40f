// Package food implements the food query pipeline and the admin write
// surface for menu items. A query with coordinates runs the radius
// search over geocoded restaurants and expands the ranked matches into
// their food; a query without coordinates walks all published items.
// Either way an optional taste slug filters the result by exact match.
package food

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/geo"
	"github.com/battlebranding/food-scout/internal/domain/view"
	"github.com/battlebranding/food-scout/internal/metrics"
)

// Service handles food search and administration.
type Service struct {
	repo          Repository
	restaurants   RestaurantReader
	relations     Relations
	tastes        TasteReader
	defaultRadius float64
	logger        *zap.Logger
}

// New creates a food service.
func New(
	repo Repository,
	restaurants RestaurantReader,
	relations Relations,
	tastes TasteReader,
	defaultRadius float64,
	logger *zap.Logger,
) *Service {
	if defaultRadius <= 0 {
		defaultRadius = geo.DefaultRadiusMiles
	}
	return &Service{
		repo:          repo,
		restaurants:   restaurants,
		relations:     relations,
		tastes:        tastes,
		defaultRadius: defaultRadius,
		logger:        logger,
	}
}

// Query carries the food search parameters. Nil coordinates mean the
// caller did not pass them; a nil radius falls back to the default.
type Query struct {
	Latitude    *float64
	Longitude   *float64
	RadiusMiles *float64
	TasteSlug   string
}

// Search returns published food items matching the query, ranked by
// restaurant distance when coordinates are present.
func (s *Service) Search(ctx context.Context, q Query) ([]view.FoodView, error) {
	if q.Latitude != nil || q.Longitude != nil {
		return s.searchByRadius(ctx, q)
	}

	foods, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list food: %w", err)
	}
	return s.assemble(ctx, filterByTaste(foods, q.TasteSlug))
}

// searchByRadius runs the proximity pipeline: radius search over
// restaurant locations, then edge expansion preserving the ranking.
func (s *Service) searchByRadius(ctx context.Context, q Query) ([]view.FoodView, error) {
	if q.Latitude == nil {
		return nil, domain.NewInvalidQuery("latitude", "is required when longitude is present")
	}
	if q.Longitude == nil {
		return nil, domain.NewInvalidQuery("longitude", "is required when latitude is present")
	}
	if !geo.ValidateCoordinates(*q.Latitude, *q.Longitude) {
		return nil, domain.NewInvalidQuery("latitude", "must be a coordinate pair within range")
	}

	radius := s.defaultRadius
	if q.RadiusMiles != nil {
		radius = *q.RadiusMiles
	}
	if math.IsNaN(radius) {
		return nil, domain.NewInvalidQuery("radius", "must be a number")
	}

	locations, err := s.restaurants.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	center := geo.Point{Latitude: *q.Latitude, Longitude: *q.Longitude}
	start := time.Now()
	candidates, stats := geo.Within(locations, center, radius)
	metrics.GeoSearchDuration.Observe(time.Since(start).Seconds())
	metrics.GeoSearchLocationsTotal.WithLabelValues("scanned").Add(float64(stats.Scanned))
	metrics.GeoSearchLocationsTotal.WithLabelValues("prefilter").Add(float64(stats.Prefilter))
	metrics.GeoSearchLocationsTotal.WithLabelValues("matched").Add(float64(stats.Matched))

	if len(candidates) == 0 {
		return []view.FoodView{}, nil
	}

	rankedIDs := make([]string, len(candidates))
	for i, c := range candidates {
		rankedIDs[i] = c.ID
	}

	foodIDs, err := s.relations.FoodIDsForRestaurants(ctx, rankedIDs)
	if err != nil {
		return nil, fmt.Errorf("expand restaurants: %w", err)
	}
	foods, err := s.repo.GetMulti(ctx, foodIDs)
	if err != nil {
		return nil, fmt.Errorf("load food: %w", err)
	}

	published := foods[:0]
	for _, f := range foods {
		if f.Published() {
			published = append(published, f)
		}
	}

	return s.assemble(ctx, filterByTaste(published, q.TasteSlug))
}

// SaveInput carries the writable fields of a food item.
type SaveInput struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	TasteSlugs   []string
	RestaurantID string
	Status       string
}

// Save validates and stores a food item and syncs its restaurant edge.
// An empty restaurant ID detaches the item.
func (s *Service) Save(ctx context.Context, in SaveInput) (view.FoodView, error) {
	f, err := domain.NewFood(in.ID, in.Name, in.Slug, in.Description, in.TasteSlugs)
	if err != nil {
		return view.FoodView{}, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}
	if in.Status != "" {
		f.SetStatus(in.Status)
	}

	if err := s.repo.Save(ctx, &f); err != nil {
		return view.FoodView{}, fmt.Errorf("save food: %w", err)
	}

	if in.RestaurantID != "" {
		if _, err := s.restaurants.Get(ctx, in.RestaurantID); err != nil {
			return view.FoodView{}, fmt.Errorf("resolve restaurant %s: %w", in.RestaurantID, err)
		}
		if err := s.relations.Link(ctx, f.ID(), in.RestaurantID); err != nil {
			return view.FoodView{}, fmt.Errorf("link restaurant: %w", err)
		}
	} else {
		if err := s.relations.Unlink(ctx, f.ID()); err != nil {
			return view.FoodView{}, fmt.Errorf("unlink restaurant: %w", err)
		}
	}

	views, err := s.assemble(ctx, []domain.Food{f})
	if err != nil {
		return view.FoodView{}, err
	}
	return views[0], nil
}

// Delete removes a food item and its restaurant edge.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.relations.Unlink(ctx, id); err != nil {
		return fmt.Errorf("unlink restaurant: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

// assemble builds the output views: taste terms are fetched once per
// distinct slug, restaurant views once per distinct restaurant.
func (s *Service) assemble(ctx context.Context, foods []domain.Food) ([]view.FoodView, error) {
	tasteViews, err := s.tasteViews(ctx, foods)
	if err != nil {
		return nil, err
	}

	restCache := make(map[string]*view.RestaurantView)
	out := make([]view.FoodView, 0, len(foods))
	for i := range foods {
		f := &foods[i]

		rv, err := s.restaurantView(ctx, restCache, f.ID())
		if err != nil {
			return nil, err
		}

		taste := make([]view.TasteView, 0, len(f.TasteSlugs()))
		for _, slug := range f.TasteSlugs() {
			if tv, ok := tasteViews[slug]; ok {
				taste = append(taste, tv)
			}
		}

		out = append(out, view.Food(f, rv, taste))
	}
	return out, nil
}

// tasteViews loads the views of every taste slug used by the given
// foods. Slugs without a stored term are absent from the result.
func (s *Service) tasteViews(ctx context.Context, foods []domain.Food) (map[string]view.TasteView, error) {
	seen := make(map[string]struct{})
	slugs := make([]string, 0)
	for i := range foods {
		for _, slug := range foods[i].TasteSlugs() {
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}
			slugs = append(slugs, slug)
		}
	}
	if len(slugs) == 0 {
		return map[string]view.TasteView{}, nil
	}

	terms, err := s.tastes.GetMulti(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("load taste terms: %w", err)
	}
	termSlugs := make([]string, len(terms))
	for i := range terms {
		termSlugs[i] = terms[i].Slug()
	}
	counts, err := s.tastes.UsageCounts(ctx, termSlugs)
	if err != nil {
		return nil, fmt.Errorf("count taste usage: %w", err)
	}

	out := make(map[string]view.TasteView, len(terms))
	for i := range terms {
		out[terms[i].Slug()] = view.Taste(&terms[i], counts[i])
	}
	return out, nil
}

// restaurantView resolves the restaurant a food item is linked to,
// caching per restaurant across one assembly pass. Unlinked items and
// dangling edges resolve to nil, which renders as restaurant: null.
func (s *Service) restaurantView(
	ctx context.Context, cache map[string]*view.RestaurantView, foodID string,
) (*view.RestaurantView, error) {
	rid, err := s.relations.RestaurantForFood(ctx, foodID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve restaurant for food %s: %w", foodID, err)
	}

	if rv, ok := cache[rid]; ok {
		return rv, nil
	}

	rest, err := s.restaurants.Get(ctx, rid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Food linked to missing restaurant",
				zap.String("food_id", foodID),
				zap.String("restaurant_id", rid),
			)
			cache[rid] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("load restaurant %s: %w", rid, err)
	}
	count, err := s.relations.FoodCount(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("count food for restaurant %s: %w", rid, err)
	}

	rv := view.Restaurant(&rest, count)
	cache[rid] = &rv
	return &rv, nil
}

// filterByTaste keeps items carrying the slug; an empty slug passes
// everything through.
func filterByTaste(foods []domain.Food, slug string) []domain.Food {
	if slug == "" {
		return foods
	}
	out := foods[:0]
	for _, f := range foods {
		if f.HasTaste(slug) {
			out = append(out, f)
		}
	}
	return out
}
