// Package restaurant lists published restaurants and handles the admin
// write surface. Saving a restaurant kicks off geocoding in the
// background: the save itself never waits on, or fails because of, the
// upstream provider.
package restaurant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/view"
)

// Service handles restaurant listing and administration.
type Service struct {
	repo           Repository
	relations      Relations
	geocoder       domain.Geocoder
	geocodeTimeout time.Duration
	logger         *zap.Logger

	geocodes sync.WaitGroup
}

// New creates a restaurant service. geocoder can be nil, which disables
// the geocoding side effect of saves.
func New(
	repo Repository,
	relations Relations,
	geocoder domain.Geocoder,
	geocodeTimeout time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:           repo,
		relations:      relations,
		geocoder:       geocoder,
		geocodeTimeout: geocodeTimeout,
		logger:         logger,
	}
}

// SaveInput carries the writable fields of a restaurant.
type SaveInput struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Address     domain.Address
	Status      string
}

// List returns all published restaurants with their food counts.
func (s *Service) List(ctx context.Context) ([]view.RestaurantView, error) {
	published, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	ids := make([]string, len(published))
	for i := range published {
		ids[i] = published[i].ID()
	}
	counts, err := s.relations.FoodCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count food: %w", err)
	}

	out := make([]view.RestaurantView, 0, len(published))
	for i := range published {
		out = append(out, view.Restaurant(&published[i], counts[i]))
	}
	return out, nil
}

// Save validates and stores a restaurant, then geocodes its address in
// the background. An empty status defaults to published.
func (s *Service) Save(ctx context.Context, in SaveInput) (view.RestaurantView, error) {
	rest, err := domain.NewRestaurant(in.ID, in.Name, in.Slug, in.Description, in.Address)
	if err != nil {
		return view.RestaurantView{}, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}
	if in.Status != "" {
		rest.SetStatus(in.Status)
	}

	if err := s.repo.Save(ctx, &rest); err != nil {
		return view.RestaurantView{}, fmt.Errorf("save restaurant: %w", err)
	}

	if s.geocoder != nil && !in.Address.IsEmpty() {
		s.geocodes.Add(1)
		go func() {
			defer s.geocodes.Done()
			s.geocodeAndStore(rest.ID(), in.Address.Line())
		}()
	}

	counts, err := s.relations.FoodCounts(ctx, []string{rest.ID()})
	if err != nil {
		return view.RestaurantView{}, fmt.Errorf("count food: %w", err)
	}
	return view.Restaurant(&rest, counts[0]), nil
}

// Delete removes a restaurant and detaches its food items. The items
// themselves survive as unlinked records.
func (s *Service) Delete(ctx context.Context, id string) error {
	foodIDs, err := s.relations.FoodIDsForRestaurants(ctx, []string{id})
	if err != nil {
		return fmt.Errorf("list linked food: %w", err)
	}
	for _, fid := range foodIDs {
		if err := s.relations.Unlink(ctx, fid); err != nil {
			return fmt.Errorf("unlink food %s: %w", fid, err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

// WaitGeocodes blocks until in-flight background geocodes finish.
// Called during graceful shutdown.
func (s *Service) WaitGeocodes() {
	s.geocodes.Wait()
}

// geocodeAndStore resolves the address and stores the coordinates.
// Runs detached from the request: its lifetime is bounded only by the
// geocode timeout, and failure leaves the stored record untouched.
func (s *Service) geocodeAndStore(id, addressLine string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.geocodeTimeout)
	defer cancel()

	g, err := s.geocoder.Geocode(ctx, addressLine)
	if err != nil {
		s.logger.Warn("Geocoding failed, coordinates left unset",
			zap.String("restaurant_id", id),
			zap.String("address", addressLine),
			zap.Error(err),
		)
		return
	}

	if err := s.repo.SetGeolocation(ctx, id, g); err != nil {
		s.logger.Warn("Failed to store geocoded coordinates",
			zap.String("restaurant_id", id),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Restaurant geocoded",
		zap.String("restaurant_id", id),
		zap.Float64("lat", g.Latitude),
		zap.Float64("lng", g.Longitude),
	)
}
