// Package taste implements taxonomy term search and administration.
// Term search is a case-insensitive substring match over name and slug;
// a blank query matches nothing, mirroring an empty autocomplete box.
package taste

import (
	"context"
	"fmt"
	"strings"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/domain/view"
)

// Service handles taste term search and administration.
type Service struct {
	repo Repository
}

// New creates a taste service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns the terms whose name or slug contains the query,
// with usage counts. An empty or whitespace query yields no results.
func (s *Service) Search(ctx context.Context, query string) ([]view.TasteView, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []view.TasteView{}, nil
	}

	terms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tastes: %w", err)
	}

	matched := make([]domain.Taste, 0, len(terms))
	for _, t := range terms {
		if strings.Contains(strings.ToLower(t.Name()), needle) ||
			strings.Contains(t.Slug(), needle) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return []view.TasteView{}, nil
	}

	slugs := make([]string, len(matched))
	for i := range matched {
		slugs[i] = matched[i].Slug()
	}
	counts, err := s.repo.UsageCounts(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("count taste usage: %w", err)
	}

	out := make([]view.TasteView, 0, len(matched))
	for i := range matched {
		out = append(out, view.Taste(&matched[i], counts[i]))
	}
	return out, nil
}

// SaveInput carries the writable fields of a taste term.
type SaveInput struct {
	ID          string
	Name        string
	Slug        string
	Description string
}

// Save validates and stores a taste term.
func (s *Service) Save(ctx context.Context, in SaveInput) (view.TasteView, error) {
	t, err := domain.NewTaste(in.ID, in.Name, in.Slug, in.Description)
	if err != nil {
		return view.TasteView{}, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}

	if err := s.repo.Save(ctx, &t); err != nil {
		return view.TasteView{}, fmt.Errorf("save taste: %w", err)
	}

	counts, err := s.repo.UsageCounts(ctx, []string{t.Slug()})
	if err != nil {
		return view.TasteView{}, fmt.Errorf("count taste usage: %w", err)
	}
	return view.Taste(&t, counts[0]), nil
}

// Delete removes a taste term.
func (s *Service) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete taste: %w", err)
	}
	return nil
}
