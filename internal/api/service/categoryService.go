package service

import (
	"context"
	"errors"
	"strings"

	"bookhub/internal/api/apperr"
	"bookhub/internal/api/models"

	"gorm.io/gorm"
)

// CategoryRepository is the slice of the catalog store the category service
// (and the upsert's id resolution) needs.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	FindAllByIDs(ctx context.Context, ids []int64) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, categoryID int64) error
}

type CategoryService interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Delete(ctx context.Context, categoryID int64) error
}

type categoryService struct {
	repo CategoryRepository
}

func NewCategoryService(r CategoryRepository) CategoryService {
	return &categoryService{repo: r}
}

func (s *categoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

// Create rejects names that collide with an existing category once case and
// all whitespace are ignored. The name is stored trimmed.
func (s *categoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperr.Newf(apperr.RequiredField, map[string]any{"field": "name"})
	}

	normalized := normalizeCategoryName(trimmed)

	// exact-name fast path, then the normalized scan that is authoritative
	exists, err := s.repo.ExistsByNameIgnoreCase(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if !exists {
		all, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range all {
			if normalizeCategoryName(c.Name) == normalized {
				exists = true
				break
			}
		}
	}
	if exists {
		return nil, apperr.Newf(apperr.CategoryAlreadyExists, map[string]any{"name": normalized})
	}

	category := &models.Category{Name: trimmed}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, categoryID int64) error {
	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.CategoryNotFound, map[string]any{"ids": []int64{categoryID}})
		}
		return err
	}
	return s.repo.Delete(ctx, categoryID)
}

// normalizeCategoryName lowers the name and strips every whitespace run, so
// "Sci Fi" and "scifi" count as duplicates.
func normalizeCategoryName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
