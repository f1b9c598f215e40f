// Package restaurant persists restaurant records as hashes with a
// membership index set. Coordinates are written separately from the
// rest of the record so a save never clobbers a previous geocode.
package restaurant

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/geo"
)

// store is the consumer interface for restaurants (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the restaurant repositories of the usecase layer.
type Repo struct {
	store store
}

// New creates a restaurant repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the restaurant hash and registers it in the index set.
// Stored coordinates are untouched: geocoding owns them via SetGeolocation.
func (r *Repo) Save(ctx context.Context, rest *domain.Restaurant) error {
	key := hashKey(rest.ID())
	if err := r.store.HSet(ctx, key, restaurantToHash(rest)); err != nil {
		return fmt.Errorf("hset restaurant %s: %w", rest.ID(), err)
	}
	if err := r.store.SAdd(ctx, indexKey(), rest.ID()); err != nil {
		return fmt.Errorf("index restaurant %s: %w", rest.ID(), err)
	}
	return nil
}

// Get returns a restaurant by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Restaurant, error) {
	m, err := r.store.HGetAll(ctx, hashKey(id))
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("hgetall restaurant %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Restaurant{}, domain.ErrNotFound
	}
	return restaurantFromHash(id, m), nil
}

// GetMulti returns the restaurants for the given IDs in input order.
// Missing records are skipped.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domain.Restaurant, error) {
	if len(ids) == 0 {
		return []domain.Restaurant{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = hashKey(id)
	}
	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi restaurants: %w", err)
	}

	out := make([]domain.Restaurant, 0, len(ids))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		out = append(out, restaurantFromHash(ids[i], m))
	}
	return out, nil
}

// ListPublished returns all published restaurants sorted by ID.
func (r *Repo) ListPublished(ctx context.Context) ([]domain.Restaurant, error) {
	ids, err := r.store.SMembers(ctx, indexKey())
	if err != nil {
		return nil, fmt.Errorf("smembers restaurant index: %w", err)
	}
	sort.Strings(ids)

	all, err := r.GetMulti(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Restaurant, 0, len(all))
	for _, rest := range all {
		if rest.Published() {
			out = append(out, rest)
		}
	}
	return out, nil
}

// Locations returns one geo point per published restaurant that has
// coordinates. Records without a stored geocode are left out.
func (r *Repo) Locations(ctx context.Context) ([]geo.Location, error) {
	published, err := r.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

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

// SetGeolocation stores the geocoded coordinates for a restaurant.
func (r *Repo) SetGeolocation(ctx context.Context, id string, g domain.Geolocation) error {
	fields := map[string]string{
		fieldLat: strconv.FormatFloat(g.Latitude, 'f', -1, 64),
		fieldLng: strconv.FormatFloat(g.Longitude, 'f', -1, 64),
	}
	if err := r.store.HSet(ctx, hashKey(id), fields); err != nil {
		return fmt.Errorf("hset geolocation %s: %w", id, err)
	}
	return nil
}

// ClearGeolocation drops the stored coordinates for a restaurant.
func (r *Repo) ClearGeolocation(ctx context.Context, id string) error {
	if err := r.store.HDel(ctx, hashKey(id), fieldLat, fieldLng); err != nil {
		return fmt.Errorf("hdel geolocation %s: %w", id, err)
	}
	return nil
}

// Delete removes a restaurant and its index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, hashKey(id))
	if err != nil {
		return fmt.Errorf("check exists %s: %w", id, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, hashKey(id)); err != nil {
		return fmt.Errorf("del restaurant %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, indexKey(), id); err != nil {
		return fmt.Errorf("unindex restaurant %s: %w", id, err)
	}
	return nil
}

// Key patterns: foodscout:restaurant:{id}, foodscout:idx:restaurants

func hashKey(id string) string {
	return fmt.Sprintf("%srestaurant:%s", domain.KeyPrefix, id)
}

func indexKey() string {
	return domain.KeyPrefix + "idx:restaurants"
}
