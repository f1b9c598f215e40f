package food

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/geo"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	saveFn          func(ctx context.Context, f *domain.Food) error
	getFn           func(ctx context.Context, id string) (domain.Food, error)
	getMultiFn      func(ctx context.Context, ids []string) ([]domain.Food, error)
	listPublishedFn func(ctx context.Context) ([]domain.Food, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (m *mockRepo) Save(ctx context.Context, f *domain.Food) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, f)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.Food, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Food{}, domain.ErrNotFound
}

func (m *mockRepo) GetMulti(ctx context.Context, ids []string) ([]domain.Food, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	return []domain.Food{}, nil
}

func (m *mockRepo) ListPublished(ctx context.Context) ([]domain.Food, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx)
	}
	return []domain.Food{}, nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockRestaurants implements RestaurantReader for tests.
type mockRestaurants struct {
	getFn       func(ctx context.Context, id string) (domain.Restaurant, error)
	getMultiFn  func(ctx context.Context, ids []string) ([]domain.Restaurant, error)
	locationsFn func(ctx context.Context) ([]geo.Location, error)
}

func (m *mockRestaurants) Get(ctx context.Context, id string) (domain.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Restaurant{}, domain.ErrNotFound
}

func (m *mockRestaurants) GetMulti(ctx context.Context, ids []string) ([]domain.Restaurant, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	return []domain.Restaurant{}, nil
}

func (m *mockRestaurants) Locations(ctx context.Context) ([]geo.Location, error) {
	if m.locationsFn != nil {
		return m.locationsFn(ctx)
	}
	return []geo.Location{}, nil
}

// mockRelations implements Relations for tests.
type mockRelations struct {
	linkFn              func(ctx context.Context, foodID, restaurantID string) error
	unlinkFn            func(ctx context.Context, foodID string) error
	restaurantForFoodFn func(ctx context.Context, foodID string) (string, error)
	foodIDsFn           func(ctx context.Context, restaurantIDs []string) ([]string, error)
	foodCountFn         func(ctx context.Context, restaurantID string) (int, error)
	foodCountsFn        func(ctx context.Context, restaurantIDs []string) ([]int, error)
}

func (m *mockRelations) Link(ctx context.Context, foodID, restaurantID string) error {
	if m.linkFn != nil {
		return m.linkFn(ctx, foodID, restaurantID)
	}
	return nil
}

func (m *mockRelations) Unlink(ctx context.Context, foodID string) error {
	if m.unlinkFn != nil {
		return m.unlinkFn(ctx, foodID)
	}
	return nil
}

func (m *mockRelations) RestaurantForFood(ctx context.Context, foodID string) (string, error) {
	if m.restaurantForFoodFn != nil {
		return m.restaurantForFoodFn(ctx, foodID)
	}
	return "", domain.ErrNotFound
}

func (m *mockRelations) FoodIDsForRestaurants(ctx context.Context, ids []string) ([]string, error) {
	if m.foodIDsFn != nil {
		return m.foodIDsFn(ctx, ids)
	}
	return []string{}, nil
}

func (m *mockRelations) FoodCount(ctx context.Context, restaurantID string) (int, error) {
	if m.foodCountFn != nil {
		return m.foodCountFn(ctx, restaurantID)
	}
	return 0, nil
}

func (m *mockRelations) FoodCounts(ctx context.Context, ids []string) ([]int, error) {
	if m.foodCountsFn != nil {
		return m.foodCountsFn(ctx, ids)
	}
	return make([]int, len(ids)), nil
}

// mockTastes implements TasteReader for tests.
type mockTastes struct {
	getMultiFn    func(ctx context.Context, slugs []string) ([]domain.Taste, error)
	usageCountsFn func(ctx context.Context, slugs []string) ([]int, error)
}

func (m *mockTastes) GetMulti(ctx context.Context, slugs []string) ([]domain.Taste, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, slugs)
	}
	out := make([]domain.Taste, len(slugs))
	for i, s := range slugs {
		out[i] = domain.ReconstructTaste(s, s, s, "")
	}
	return out, nil
}

func (m *mockTastes) UsageCounts(ctx context.Context, slugs []string) ([]int, error) {
	if m.usageCountsFn != nil {
		return m.usageCountsFn(ctx, slugs)
	}
	return make([]int, len(slugs)), nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockRestaurants, *mockRelations, *mockTastes) {
	t.Helper()
	repo := &mockRepo{}
	rests := &mockRestaurants{}
	rels := &mockRelations{}
	tastes := &mockTastes{}
	svc := New(repo, rests, rels, tastes, geo.DefaultRadiusMiles, zap.NewNop())
	return svc, repo, rests, rels, tastes
}

func publishedFood(t *testing.T, id, name, slug string, tasteSlugs ...string) domain.Food {
	t.Helper()
	f, err := domain.NewFood(id, name, slug, "", tasteSlugs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func publishedRestaurant(t *testing.T, id, name, slug string) domain.Restaurant {
	t.Helper()
	r, err := domain.NewRestaurant(id, name, slug, "", domain.Address{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func ptr(f float64) *float64 { return &f }
