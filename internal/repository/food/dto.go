package food

import (
	"strings"

	"github.com/battlebranding/food-scout/internal/domain"
)

// Hash field names. Taste slugs are stored comma-joined: the slug
// grammar has no commas, so the join is unambiguous.
const (
	fieldName        = "name"
	fieldSlug        = "slug"
	fieldDescription = "description"
	fieldTaste       = "taste"
	fieldStatus      = "status"
)

func foodToHash(f *domain.Food) map[string]string {
	return map[string]string{
		fieldName:        f.Name(),
		fieldSlug:        f.Slug(),
		fieldDescription: f.Description(),
		fieldTaste:       strings.Join(f.TasteSlugs(), ","),
		fieldStatus:      f.Status(),
	}
}

func foodFromHash(id string, m map[string]string) domain.Food {
	status := m[fieldStatus]
	if status == "" {
		status = domain.StatusDraft
	}
	return domain.ReconstructFood(
		id, m[fieldName], m[fieldSlug], m[fieldDescription],
		splitSlugs(m[fieldTaste]), status,
	)
}

func splitSlugs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
