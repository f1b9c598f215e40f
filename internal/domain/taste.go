package domain

// Taste is a taxonomy term applied to food items. The slug is the stable
// matching key; the display name is presentation only.
type Taste struct {
	id          string
	name        string
	slug        string
	description string
}

// NewTaste validates and creates a Taste term. An empty id defaults to the slug.
func NewTaste(id, name, slug, description string) (Taste, error) {
	if id == "" {
		id = slug
	}
	if err := validateIdentity("taste", id, name, slug); err != nil {
		return Taste{}, err
	}
	return Taste{id: id, name: name, slug: slug, description: description}, nil
}

// ReconstructTaste creates a Taste without validation (storage hydration).
func ReconstructTaste(id, name, slug, description string) Taste {
	return Taste{id: id, name: name, slug: slug, description: description}
}

// ID returns the term identifier.
func (t *Taste) ID() string { return t.id }

// Name returns the display name.
func (t *Taste) Name() string { return t.name }

// Slug returns the stable matching key.
func (t *Taste) Slug() string { return t.slug }

// Description returns the description text.
func (t *Taste) Description() string { return t.description }
