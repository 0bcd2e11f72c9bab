package service

import (
	"context"
	"fmt"

	"ticket-sales/internal/features/categories/domain"
	"ticket-sales/internal/features/categories/ports"
)

// CategoryServiceImpl implements ports.CategoryService.
type CategoryServiceImpl struct {
	repo ports.CategoryRepository
}

// NewCategoryService creates a new CategoryServiceImpl.
func NewCategoryService(repo ports.CategoryRepository) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryServiceImpl) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get category: %w", err)
	}
	return category, nil
}

func (s *CategoryServiceImpl) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	category, err := s.repo.Create(ctx, &domain.Category{Name: in.Name, Description: in.Description})
	if err != nil {
		return nil, fmt.Errorf("service: failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(category)

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update category: %w", err)
	}
	return updated, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete category: %w", err)
	}
	return nil
}
