package taste

import (
	"context"

	"github.com/battlebranding/food-scout/internal/domain"
)

// Repository defines the storage contract for taste terms.
type Repository interface {
	Save(ctx context.Context, t *domain.Taste) error
	Get(ctx context.Context, slug string) (domain.Taste, error)
	List(ctx context.Context) ([]domain.Taste, error)
	UsageCounts(ctx context.Context, slugs []string) ([]int, error)
	Delete(ctx context.Context, slug string) error
}
