package repository

import (
	"context"
	"fmt"

	"bookhub/internal/api/models"

	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).
		Preload("BookCategories").
		Order("name asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAllByIDs returns the subset of categories that exist; callers compare
// the result against the requested ids to detect missing ones.
func (r *CategoryRepo) FindAllByIDs(ctx context.Context, ids []int64) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Category
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find categories by ids: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("lower(name) = lower(?)", name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return count > 0, nil
}

// Delete removes the category and the links it owns. Books keep their other
// links and are never touched.
func (r *CategoryRepo) Delete(ctx context.Context, categoryID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.BookCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, categoryID).Error
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
