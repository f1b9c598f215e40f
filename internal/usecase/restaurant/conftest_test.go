package restaurant

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	saveFn           func(ctx context.Context, r *domain.Restaurant) error
	getFn            func(ctx context.Context, id string) (domain.Restaurant, error)
	listPublishedFn  func(ctx context.Context) ([]domain.Restaurant, error)
	setGeolocationFn func(ctx context.Context, id string, g domain.Geolocation) error
	deleteFn         func(ctx context.Context, id string) error
}

func (m *mockRepo) Save(ctx context.Context, r *domain.Restaurant) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, r)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Restaurant{}, domain.ErrNotFound
}

func (m *mockRepo) ListPublished(ctx context.Context) ([]domain.Restaurant, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx)
	}
	return []domain.Restaurant{}, nil
}

func (m *mockRepo) SetGeolocation(ctx context.Context, id string, g domain.Geolocation) error {
	if m.setGeolocationFn != nil {
		return m.setGeolocationFn(ctx, id, g)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockRelations implements Relations for tests.
type mockRelations struct {
	foodCountsFn func(ctx context.Context, restaurantIDs []string) ([]int, error)
	foodIDsFn    func(ctx context.Context, restaurantIDs []string) ([]string, error)
	unlinkFn     func(ctx context.Context, foodID string) error
}

func (m *mockRelations) FoodCounts(ctx context.Context, ids []string) ([]int, error) {
	if m.foodCountsFn != nil {
		return m.foodCountsFn(ctx, ids)
	}
	return make([]int, len(ids)), nil
}

func (m *mockRelations) FoodIDsForRestaurants(ctx context.Context, ids []string) ([]string, error) {
	if m.foodIDsFn != nil {
		return m.foodIDsFn(ctx, ids)
	}
	return []string{}, nil
}

func (m *mockRelations) Unlink(ctx context.Context, foodID string) error {
	if m.unlinkFn != nil {
		return m.unlinkFn(ctx, foodID)
	}
	return nil
}

// mockGeocoder implements domain.Geocoder for tests.
type mockGeocoder struct {
	result domain.Geolocation
	err    error
	calls  int
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string) (domain.Geolocation, error) {
	m.calls++
	if m.err != nil {
		return domain.Geolocation{}, m.err
	}
	return m.result, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockRelations, *mockGeocoder) {
	t.Helper()
	repo := &mockRepo{}
	rels := &mockRelations{}
	gc := &mockGeocoder{}
	svc := New(repo, rels, gc, time.Second, zap.NewNop())
	return svc, repo, rels, gc
}

func publishedRestaurant(t *testing.T, id, name, slug string) domain.Restaurant {
	t.Helper()
	r, err := domain.NewRestaurant(id, name, slug, "", domain.Address{City: "Austin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}
