// Package relation persists the food-to-restaurant edges as paired
// sets, one per direction. A food item belongs to at most one
// restaurant; stored data violating that is recovered deterministically
// rather than failing the read.
package relation

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
)

// store is the consumer interface for relationship edges (ISP).
type store interface {
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SMembersMulti(ctx context.Context, keys []string) ([][]string, error)
	SCard(ctx context.Context, key string) (int, error)
	SCardMulti(ctx context.Context, keys []string) ([]int, error)
}

// Repo implements the relation repositories of the usecase layer.
type Repo struct {
	store     store
	anomalies prometheus.Counter
	logger    *zap.Logger
}

// New creates a relation repository.
// anomalies counts food items found linked to more than one restaurant,
// passed explicitly.
func New(s store, anomalies prometheus.Counter, logger *zap.Logger) *Repo {
	return &Repo{store: s, anomalies: anomalies, logger: logger}
}

// Link attaches a food item to a restaurant, replacing any previous
// attachment so both directions stay consistent.
func (r *Repo) Link(ctx context.Context, foodID, restaurantID string) error {
	previous, err := r.store.SMembers(ctx, foodEdgeKey(foodID))
	if err != nil {
		return fmt.Errorf("smembers food edge %s: %w", foodID, err)
	}
	for _, rid := range previous {
		if err := r.store.SRem(ctx, restaurantEdgeKey(rid), foodID); err != nil {
			return fmt.Errorf("srem restaurant edge %s: %w", rid, err)
		}
	}
	if len(previous) > 0 {
		if err := r.store.Del(ctx, foodEdgeKey(foodID)); err != nil {
			return fmt.Errorf("del food edge %s: %w", foodID, err)
		}
	}

	if err := r.store.SAdd(ctx, foodEdgeKey(foodID), restaurantID); err != nil {
		return fmt.Errorf("sadd food edge %s: %w", foodID, err)
	}
	if err := r.store.SAdd(ctx, restaurantEdgeKey(restaurantID), foodID); err != nil {
		return fmt.Errorf("sadd restaurant edge %s: %w", restaurantID, err)
	}
	return nil
}

// Unlink detaches a food item from whatever restaurant it is linked to.
func (r *Repo) Unlink(ctx context.Context, foodID string) error {
	previous, err := r.store.SMembers(ctx, foodEdgeKey(foodID))
	if err != nil {
		return fmt.Errorf("smembers food edge %s: %w", foodID, err)
	}
	for _, rid := range previous {
		if err := r.store.SRem(ctx, restaurantEdgeKey(rid), foodID); err != nil {
			return fmt.Errorf("srem restaurant edge %s: %w", rid, err)
		}
	}
	if err := r.store.Del(ctx, foodEdgeKey(foodID)); err != nil {
		return fmt.Errorf("del food edge %s: %w", foodID, err)
	}
	return nil
}

// RestaurantForFood returns the ID of the restaurant a food item is
// linked to, or ErrNotFound when the item is unattached. An item linked
// to several restaurants resolves to the lowest ID so repeated reads
// agree; the extra edges are reported, not fixed.
func (r *Repo) RestaurantForFood(ctx context.Context, foodID string) (string, error) {
	ids, err := r.store.SMembers(ctx, foodEdgeKey(foodID))
	if err != nil {
		return "", fmt.Errorf("smembers food edge %s: %w", foodID, err)
	}
	if len(ids) == 0 {
		return "", domain.ErrNotFound
	}
	sort.Strings(ids)
	if len(ids) > 1 {
		r.reportAnomaly(foodID, ids)
	}
	return ids[0], nil
}

// FoodIDsForRestaurants expands ranked restaurant IDs into food IDs,
// preserving the restaurant ranking. Within one restaurant food IDs
// come out sorted; duplicates keep their first position.
func (r *Repo) FoodIDsForRestaurants(ctx context.Context, restaurantIDs []string) ([]string, error) {
	if len(restaurantIDs) == 0 {
		return []string{}, nil
	}
	keys := make([]string, len(restaurantIDs))
	for i, rid := range restaurantIDs {
		keys[i] = restaurantEdgeKey(rid)
	}
	sets, err := r.store.SMembersMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("smembers multi restaurant edges: %w", err)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, members := range sets {
		sort.Strings(members)
		for _, fid := range members {
			if _, ok := seen[fid]; ok {
				continue
			}
			seen[fid] = struct{}{}
			out = append(out, fid)
		}
	}
	return out, nil
}

// FoodCount returns the number of food items linked to a restaurant.
func (r *Repo) FoodCount(ctx context.Context, restaurantID string) (int, error) {
	n, err := r.store.SCard(ctx, restaurantEdgeKey(restaurantID))
	if err != nil {
		return 0, fmt.Errorf("scard restaurant edge %s: %w", restaurantID, err)
	}
	return n, nil
}

// FoodCounts returns per-restaurant food counts, in input order.
func (r *Repo) FoodCounts(ctx context.Context, restaurantIDs []string) ([]int, error) {
	if len(restaurantIDs) == 0 {
		return []int{}, nil
	}
	keys := make([]string, len(restaurantIDs))
	for i, rid := range restaurantIDs {
		keys[i] = restaurantEdgeKey(rid)
	}
	counts, err := r.store.SCardMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("scard multi restaurant edges: %w", err)
	}
	return counts, nil
}

func (r *Repo) reportAnomaly(foodID string, restaurantIDs []string) {
	if r.anomalies != nil {
		r.anomalies.Inc()
	}
	if r.logger != nil {
		r.logger.Warn("Food item linked to multiple restaurants",
			zap.String("food_id", foodID),
			zap.Strings("restaurant_ids", restaurantIDs),
			zap.Error(domain.ErrDataAnomaly),
		)
	}
}

// Key patterns: foodscout:rel:food:{id}, foodscout:rel:restaurant:{id}

func foodEdgeKey(foodID string) string {
	return fmt.Sprintf("%srel:food:%s", domain.KeyPrefix, foodID)
}

func restaurantEdgeKey(restaurantID string) string {
	return fmt.Sprintf("%srel:restaurant:%s", domain.KeyPrefix, restaurantID)
}
