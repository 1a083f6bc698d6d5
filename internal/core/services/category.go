// internal/core/services/category.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// CategoryService keeps the runtime-mutable category map
type CategoryService struct {
	store      ports.DocumentStore
	mu         sync.Mutex
	categories domain.CategoryMap
	logger     *slog.Logger
}

// NewCategoryService creates a new category service. Call Load before use.
func NewCategoryService(store ports.DocumentStore, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger.With(slog.String("service", "category")),
	}
}

// Load reads the stored mapping, seeding the defaults when none exists
func (s *CategoryService) Load(ctx context.Context) (domain.CategoryMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return categories.Clone(), nil
}

func (s *CategoryService) load(ctx context.Context) (domain.CategoryMap, error) {
	doc, err := s.store.GetOne(ctx, ports.CollectionSettings, ports.SettingsCategoriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	if doc == nil {
		defaults := domain.DefaultCategories()
		if err := s.store.SetOne(ctx, ports.CollectionSettings, ports.SettingsCategoriesID, defaults.Fields()); err != nil {
			return nil, fmt.Errorf("failed to seed categories: %w", err)
		}
		s.logger.InfoContext(ctx, "seeded default categories", slog.Int("count", len(defaults)))
		s.categories = defaults
		return defaults, nil
	}

	categories, err := domain.DecodeCategoryMap(doc)
	if err != nil {
		return nil, err
	}
	s.categories = categories
	return categories, nil
}

// Categories returns a copy of the current mapping
func (s *CategoryService) Categories(ctx context.Context) (domain.CategoryMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categories == nil {
		if _, err := s.load(ctx); err != nil {
			return nil, err
		}
	}
	return s.categories.Clone(), nil
}

// AddCategory adds a category and returns the new mapping
func (s *CategoryService) AddCategory(ctx context.Context, name string) (domain.CategoryMap, error) {
	return s.mutate(ctx, func(m domain.CategoryMap) (domain.CategoryMap, error) {
		return m.WithCategory(name)
	})
}

// AddSubcategory adds a subcategory under an existing category and returns
// the new mapping
func (s *CategoryService) AddSubcategory(ctx context.Context, category, name string) (domain.CategoryMap, error) {
	return s.mutate(ctx, func(m domain.CategoryMap) (domain.CategoryMap, error) {
		return m.WithSubcategory(category, name)
	})
}

func (s *CategoryService) mutate(ctx context.Context, change func(domain.CategoryMap) (domain.CategoryMap, error)) (domain.CategoryMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categories == nil {
		if _, err := s.load(ctx); err != nil {
			return nil, err
		}
	}

	next, err := change(s.categories)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetOne(ctx, ports.CollectionSettings, ports.SettingsCategoriesID, next.Fields()); err != nil {
		return nil, fmt.Errorf("failed to save categories: %w", err)
	}
	s.categories = next

	s.logger.InfoContext(ctx, "categories updated", slog.Int("count", len(next)))
	return next.Clone(), nil
}
