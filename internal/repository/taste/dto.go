package taste

import "github.com/battlebranding/food-scout/internal/domain"

const (
	fieldID          = "id"
	fieldName        = "name"
	fieldDescription = "description"
)

func tasteToHash(t *domain.Taste) map[string]string {
	return map[string]string{
		fieldID:          t.ID(),
		fieldName:        t.Name(),
		fieldDescription: t.Description(),
	}
}

func tasteFromHash(slug string, m map[string]string) domain.Taste {
	id := m[fieldID]
	if id == "" {
		id = slug
	}
	return domain.ReconstructTaste(id, m[fieldName], slug, m[fieldDescription])
}
