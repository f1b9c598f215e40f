// Package taste persists taxonomy terms keyed by slug. Term usage is
// read from the per-taste food sets maintained by the food repository,
// so counts always reflect current tag membership.
package taste

import (
	"context"
	"fmt"
	"sort"

	"github.com/battlebranding/food-scout/internal/domain"
)

// store is the consumer interface for taste terms (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCardMulti(ctx context.Context, keys []string) ([]int, error)
}

// Repo implements the taste repositories of the usecase layer.
type Repo struct {
	store store
}

// New creates a taste repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the term hash and registers the slug in the index set.
func (r *Repo) Save(ctx context.Context, t *domain.Taste) error {
	if err := r.store.HSet(ctx, hashKey(t.Slug()), tasteToHash(t)); err != nil {
		return fmt.Errorf("hset taste %s: %w", t.Slug(), err)
	}
	if err := r.store.SAdd(ctx, indexKey(), t.Slug()); err != nil {
		return fmt.Errorf("index taste %s: %w", t.Slug(), err)
	}
	return nil
}

// Get returns a term by slug.
func (r *Repo) Get(ctx context.Context, slug string) (domain.Taste, error) {
	m, err := r.store.HGetAll(ctx, hashKey(slug))
	if err != nil {
		return domain.Taste{}, fmt.Errorf("hgetall taste %s: %w", slug, err)
	}
	if len(m) == 0 {
		return domain.Taste{}, domain.ErrNotFound
	}
	return tasteFromHash(slug, m), nil
}

// List returns all terms sorted by slug.
func (r *Repo) List(ctx context.Context) ([]domain.Taste, error) {
	slugs, err := r.store.SMembers(ctx, indexKey())
	if err != nil {
		return nil, fmt.Errorf("smembers taste index: %w", err)
	}
	sort.Strings(slugs)
	return r.GetMulti(ctx, slugs)
}

// GetMulti returns the terms for the given slugs in input order.
// Missing records are skipped.
func (r *Repo) GetMulti(ctx context.Context, slugs []string) ([]domain.Taste, error) {
	if len(slugs) == 0 {
		return []domain.Taste{}, nil
	}
	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = hashKey(s)
	}
	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi tastes: %w", err)
	}

	out := make([]domain.Taste, 0, len(slugs))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		out = append(out, tasteFromHash(slugs[i], m))
	}
	return out, nil
}

// UsageCounts returns per-slug counts of tagged food items, in input order.
func (r *Repo) UsageCounts(ctx context.Context, slugs []string) ([]int, error) {
	if len(slugs) == 0 {
		return []int{}, nil
	}
	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = usageKey(s)
	}
	counts, err := r.store.SCardMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("scard multi taste usage: %w", err)
	}
	return counts, nil
}

// Delete removes a term, its index entry, and its usage set.
func (r *Repo) Delete(ctx context.Context, slug string) error {
	m, err := r.store.HGetAll(ctx, hashKey(slug))
	if err != nil {
		return fmt.Errorf("hgetall taste %s: %w", slug, err)
	}
	if len(m) == 0 {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, hashKey(slug)); err != nil {
		return fmt.Errorf("del taste %s: %w", slug, err)
	}
	if err := r.store.SRem(ctx, indexKey(), slug); err != nil {
		return fmt.Errorf("unindex taste %s: %w", slug, err)
	}
	if err := r.store.Del(ctx, usageKey(slug)); err != nil {
		return fmt.Errorf("del taste usage %s: %w", slug, err)
	}
	return nil
}

// Key patterns: foodscout:taste:{slug}, foodscout:idx:taste, foodscout:taste:{slug}:food

func hashKey(slug string) string {
	return fmt.Sprintf("%staste:%s", domain.KeyPrefix, slug)
}

func indexKey() string {
	return domain.KeyPrefix + "idx:taste"
}

func usageKey(slug string) string {
	return fmt.Sprintf("%staste:%s:food", domain.KeyPrefix, slug)
}
