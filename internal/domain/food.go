package domain

import "fmt"

// PlaceholderCost is the fixed cost rendered for every food item.
// Pricing is not modeled yet; the value is part of the API contract.
const PlaceholderCost = "0.00"

// Food is a single menu item. It carries its taste tag slugs and is
// connected to at most one restaurant through the relationship edge,
// which lives outside the entity.
type Food struct {
	id          string
	name        string
	slug        string
	description string
	tasteSlugs  []string
	status      string
}

// NewFood validates and creates a Food item.
func NewFood(id, name, slug, description string, tasteSlugs []string) (Food, error) {
	if err := validateIdentity("food", id, name, slug); err != nil {
		return Food{}, err
	}
	for _, ts := range tasteSlugs {
		if !slugRegex.MatchString(ts) {
			return Food{}, fmt.Errorf("taste slug %q must be lowercase alphanumeric with hyphens", ts)
		}
	}
	return Food{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		tasteSlugs:  dedupeSlugs(tasteSlugs),
		status:      StatusPublished,
	}, nil
}

// ReconstructFood creates a Food without validation (storage hydration).
func ReconstructFood(id, name, slug, description string, tasteSlugs []string, status string) Food {
	return Food{
		id: id, name: name, slug: slug, description: description,
		tasteSlugs: tasteSlugs, status: status,
	}
}

// ID returns the food identifier.
func (f *Food) ID() string { return f.id }

// Name returns the display name.
func (f *Food) Name() string { return f.name }

// Slug returns the URL slug.
func (f *Food) Slug() string { return f.slug }

// Description returns the description text.
func (f *Food) Description() string { return f.description }

// TasteSlugs returns the slugs of the taste tags applied to this item.
func (f *Food) TasteSlugs() []string { return f.tasteSlugs }

// Status returns the publication status.
func (f *Food) Status() string { return f.status }

// Published reports whether the food item is publicly visible.
func (f *Food) Published() bool { return f.status == StatusPublished }

// SetStatus overrides the publication status.
func (f *Food) SetStatus(status string) { f.status = status }

// HasTaste reports whether the item carries the given taste slug.
// Matching is exact slug equality, never substring.
func (f *Food) HasTaste(slug string) bool {
	for _, ts := range f.tasteSlugs {
		if ts == slug {
			return true
		}
	}
	return false
}

// dedupeSlugs removes duplicates preserving first-seen order.
func dedupeSlugs(slugs []string) []string {
	if len(slugs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
