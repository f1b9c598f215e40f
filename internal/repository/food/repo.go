// Package food persists menu items as hashes with a membership index
// set. It also maintains the per-taste usage sets that back taxonomy
// term counts, diffing tag membership on every save.
package food

import (
	"context"
	"fmt"
	"sort"

	"github.com/battlebranding/food-scout/internal/domain"
)

// store is the consumer interface for food items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the food repositories of the usecase layer.
type Repo struct {
	store store
}

// New creates a food repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the food hash, registers it in the index set, and syncs
// the taste usage sets against the previously stored tag slugs.
func (r *Repo) Save(ctx context.Context, f *domain.Food) error {
	key := hashKey(f.ID())

	old, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return fmt.Errorf("hgetall food %s: %w", f.ID(), err)
	}
	oldSlugs := splitSlugs(old[fieldTaste])

	if err := r.store.HSet(ctx, key, foodToHash(f)); err != nil {
		return fmt.Errorf("hset food %s: %w", f.ID(), err)
	}
	if err := r.store.SAdd(ctx, indexKey(), f.ID()); err != nil {
		return fmt.Errorf("index food %s: %w", f.ID(), err)
	}

	return r.syncUsage(ctx, f.ID(), oldSlugs, f.TasteSlugs())
}

// Get returns a food item by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Food, error) {
	m, err := r.store.HGetAll(ctx, hashKey(id))
	if err != nil {
		return domain.Food{}, fmt.Errorf("hgetall food %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Food{}, domain.ErrNotFound
	}
	return foodFromHash(id, m), nil
}

// GetMulti returns the food items for the given IDs in input order.
// Missing records are skipped.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domain.Food, error) {
	if len(ids) == 0 {
		return []domain.Food{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = hashKey(id)
	}
	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi food: %w", err)
	}

	out := make([]domain.Food, 0, len(ids))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		out = append(out, foodFromHash(ids[i], m))
	}
	return out, nil
}

// ListPublished returns all published food items sorted by ID.
func (r *Repo) ListPublished(ctx context.Context) ([]domain.Food, error) {
	ids, err := r.store.SMembers(ctx, indexKey())
	if err != nil {
		return nil, fmt.Errorf("smembers food index: %w", err)
	}
	sort.Strings(ids)

	all, err := r.GetMulti(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Food, 0, len(all))
	for _, f := range all {
		if f.Published() {
			out = append(out, f)
		}
	}
	return out, nil
}

// Delete removes a food item, its index entry, and its taste usage.
func (r *Repo) Delete(ctx context.Context, id string) error {
	m, err := r.store.HGetAll(ctx, hashKey(id))
	if err != nil {
		return fmt.Errorf("hgetall food %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, hashKey(id)); err != nil {
		return fmt.Errorf("del food %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, indexKey(), id); err != nil {
		return fmt.Errorf("unindex food %s: %w", id, err)
	}

	return r.syncUsage(ctx, id, splitSlugs(m[fieldTaste]), nil)
}

// syncUsage applies the tag membership diff to the taste usage sets.
func (r *Repo) syncUsage(ctx context.Context, foodID string, oldSlugs, newSlugs []string) error {
	current := make(map[string]struct{}, len(newSlugs))
	for _, s := range newSlugs {
		current[s] = struct{}{}
	}
	previous := make(map[string]struct{}, len(oldSlugs))
	for _, s := range oldSlugs {
		previous[s] = struct{}{}
	}

	for _, s := range oldSlugs {
		if _, keep := current[s]; keep {
			continue
		}
		if err := r.store.SRem(ctx, usageKey(s), foodID); err != nil {
			return fmt.Errorf("srem taste usage %s: %w", s, err)
		}
	}
	for _, s := range newSlugs {
		if _, had := previous[s]; had {
			continue
		}
		if err := r.store.SAdd(ctx, usageKey(s), foodID); err != nil {
			return fmt.Errorf("sadd taste usage %s: %w", s, err)
		}
	}
	return nil
}

// Key patterns: foodscout:food:{id}, foodscout:idx:food, foodscout:taste:{slug}:food

func hashKey(id string) string {
	return fmt.Sprintf("%sfood:%s", domain.KeyPrefix, id)
}

func indexKey() string {
	return domain.KeyPrefix + "idx:food"
}

func usageKey(slug string) string {
	return fmt.Sprintf("%staste:%s:food", domain.KeyPrefix, slug)
}
