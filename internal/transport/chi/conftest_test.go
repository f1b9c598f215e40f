package chi

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/geo"
	fooduc "github.com/battlebranding/food-scout/internal/usecase/food"
	healthuc "github.com/battlebranding/food-scout/internal/usecase/health"
	restaurantuc "github.com/battlebranding/food-scout/internal/usecase/restaurant"
	tasteuc "github.com/battlebranding/food-scout/internal/usecase/taste"
)

// memStore is an in-memory backend implementing every repository
// contract the services need, so handler tests run the full stack.
type memStore struct {
	restaurants map[string]domain.Restaurant
	foods       map[string]domain.Food
	tastes      map[string]domain.Taste
	foodToRest  map[string]string
	dbErr       error
}

func newMemStore() *memStore {
	return &memStore{
		restaurants: make(map[string]domain.Restaurant),
		foods:       make(map[string]domain.Food),
		tastes:      make(map[string]domain.Taste),
		foodToRest:  make(map[string]string),
	}
}

func (m *memStore) Ping(_ context.Context) error { return m.dbErr }

var errConnRefused = errors.New("connection refused")

// --- restaurant repository ---

func (m *memStore) Save(_ context.Context, r *domain.Restaurant) error {
	if old, ok := m.restaurants[r.ID()]; ok {
		if g := old.Geolocation(); g != nil && r.Geolocation() == nil {
			r.SetGeolocation(*g)
		}
	}
	m.restaurants[r.ID()] = *r
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (domain.Restaurant, error) {
	r, ok := m.restaurants[id]
	if !ok {
		return domain.Restaurant{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memStore) GetMulti(_ context.Context, ids []string) ([]domain.Restaurant, error) {
	out := make([]domain.Restaurant, 0, len(ids))
	for _, id := range ids {
		if r, ok := m.restaurants[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListPublished(_ context.Context) ([]domain.Restaurant, error) {
	ids := make([]string, 0, len(m.restaurants))
	for id := range m.restaurants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Restaurant, 0, len(ids))
	for _, id := range ids {
		if r := m.restaurants[id]; r.Published() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) SetGeolocation(_ context.Context, id string, g domain.Geolocation) error {
	r, ok := m.restaurants[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.SetGeolocation(g)
	m.restaurants[id] = r
	return nil
}

func (m *memStore) Locations(_ context.Context) ([]geo.Location, error) {
	published, _ := m.ListPublished(context.Background())
	out := make([]geo.Location, 0, len(published))
	for i := range published {
		g := published[i].Geolocation()
		if g == nil {
			continue
		}
		out = append(out, geo.Location{
			ID:    published[i].ID(),
			Point: geo.Point{Latitude: g.Latitude, Longitude: g.Longitude},
		})
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.restaurants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.restaurants, id)
	return nil
}

// --- food repository (wrapped to dodge method name collisions) ---

type memFoodRepo struct{ m *memStore }

func (r memFoodRepo) Save(_ context.Context, f *domain.Food) error {
	r.m.foods[f.ID()] = *f
	return nil
}

func (r memFoodRepo) Get(_ context.Context, id string) (domain.Food, error) {
	f, ok := r.m.foods[id]
	if !ok {
		return domain.Food{}, domain.ErrNotFound
	}
	return f, nil
}

func (r memFoodRepo) GetMulti(_ context.Context, ids []string) ([]domain.Food, error) {
	out := make([]domain.Food, 0, len(ids))
	for _, id := range ids {
		if f, ok := r.m.foods[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r memFoodRepo) ListPublished(_ context.Context) ([]domain.Food, error) {
	ids := make([]string, 0, len(r.m.foods))
	for id := range r.m.foods {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Food, 0, len(ids))
	for _, id := range ids {
		if f := r.m.foods[id]; f.Published() {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r memFoodRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.m.foods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.foods, id)
	return nil
}

// --- taste repository ---

type memTasteRepo struct{ m *memStore }

func (r memTasteRepo) Save(_ context.Context, t *domain.Taste) error {
	r.m.tastes[t.Slug()] = *t
	return nil
}

func (r memTasteRepo) Get(_ context.Context, slug string) (domain.Taste, error) {
	t, ok := r.m.tastes[slug]
	if !ok {
		return domain.Taste{}, domain.ErrNotFound
	}
	return t, nil
}

func (r memTasteRepo) GetMulti(_ context.Context, slugs []string) ([]domain.Taste, error) {
	out := make([]domain.Taste, 0, len(slugs))
	for _, slug := range slugs {
		if t, ok := r.m.tastes[slug]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r memTasteRepo) List(_ context.Context) ([]domain.Taste, error) {
	slugs := make([]string, 0, len(r.m.tastes))
	for slug := range r.m.tastes {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	out := make([]domain.Taste, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, r.m.tastes[slug])
	}
	return out, nil
}

func (r memTasteRepo) UsageCounts(_ context.Context, slugs []string) ([]int, error) {
	out := make([]int, len(slugs))
	for i, slug := range slugs {
		for _, f := range r.m.foods {
			if f.HasTaste(slug) {
				out[i]++
			}
		}
	}
	return out, nil
}

func (r memTasteRepo) Delete(_ context.Context, slug string) error {
	if _, ok := r.m.tastes[slug]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.tastes, slug)
	return nil
}

// --- relations ---

type memRelations struct{ m *memStore }

func (r memRelations) Link(_ context.Context, foodID, restaurantID string) error {
	r.m.foodToRest[foodID] = restaurantID
	return nil
}

func (r memRelations) Unlink(_ context.Context, foodID string) error {
	delete(r.m.foodToRest, foodID)
	return nil
}

func (r memRelations) RestaurantForFood(_ context.Context, foodID string) (string, error) {
	rid, ok := r.m.foodToRest[foodID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return rid, nil
}

func (r memRelations) FoodIDsForRestaurants(_ context.Context, restaurantIDs []string) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rid := range restaurantIDs {
		ids := make([]string, 0)
		for fid, linked := range r.m.foodToRest {
			if linked == rid {
				ids = append(ids, fid)
			}
		}
		sort.Strings(ids)
		for _, fid := range ids {
			if _, ok := seen[fid]; ok {
				continue
			}
			seen[fid] = struct{}{}
			out = append(out, fid)
		}
	}
	return out, nil
}

func (r memRelations) FoodCount(_ context.Context, restaurantID string) (int, error) {
	n := 0
	for _, linked := range r.m.foodToRest {
		if linked == restaurantID {
			n++
		}
	}
	return n, nil
}

func (r memRelations) FoodCounts(_ context.Context, restaurantIDs []string) ([]int, error) {
	out := make([]int, len(restaurantIDs))
	for i, rid := range restaurantIDs {
		out[i], _ = r.FoodCount(context.Background(), rid)
	}
	return out, nil
}

// newTestServer wires a full server over an in-memory backend.
func newTestServer(t *testing.T) (http.Handler, *memStore) {
	t.Helper()

	m := newMemStore()
	logger := zap.NewNop()

	restSvc := restaurantuc.New(m, memRelations{m}, nil, 0, logger)
	foodSvc := fooduc.New(memFoodRepo{m}, m, memRelations{m}, memTasteRepo{m}, 0, logger)
	tasteSvc := tasteuc.New(memTasteRepo{m})
	healthSvc := healthuc.New(m, nil)

	srv := NewServer(restSvc, foodSvc, tasteSvc, healthSvc, logger)
	r := chirouter.NewRouter()
	srv.Routes(r)
	return r, m
}

// --- seed helpers ---

func seedRestaurant(m *memStore, id, name, slug string, g *domain.Geolocation) {
	m.restaurants[id] = domain.ReconstructRestaurant(
		id, name, slug, "",
		domain.Address{Street: "1 Main St", City: "Austin", State: "TX", Zip: "78701"},
		g, domain.StatusPublished,
	)
}

func seedFood(m *memStore, id, name, slug string, tasteSlugs ...string) {
	m.foods[id] = domain.ReconstructFood(id, name, slug, "", tasteSlugs, domain.StatusPublished)
}

func seedTaste(m *memStore, id, name, slug string) {
	m.tastes[slug] = domain.ReconstructTaste(id, name, slug, "")
}
