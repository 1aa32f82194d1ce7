package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/models"
)

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	exists, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if exists {
		return nil, models.Conflict("Category '%s' already exists", name)
	}

	category := &models.Category{Name: name, Description: req.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Category not found")
		}
		return nil, fmt.Errorf("load category: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, category.Name) {
		exists, err := s.categories.ExistsByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if exists {
			return nil, models.Conflict("Category '%s' already exists", name)
		}
	}

	category.Name = name
	category.Description = req.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.NotFound("Category not found")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
