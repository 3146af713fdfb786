package repository

import (
	"context"
	"errors"
	"fmt"

	"bookhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) GetAll(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Preload("BookCategories.Category").
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get books: %w", err)
	}
	return list, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByIDWithCategories loads the book together with its current link set,
// which the category synchronizer diffs against.
func (r *BookRepo) GetByIDWithCategories(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).
		Preload("BookCategories.Category").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByTitleAndAuthor does the exact natural-key lookup behind the upsert
// decision. Returns (nil, nil) when no such book exists.
func (r *BookRepo) FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.Book, error) {
	var b models.Book
	err := r.db.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find book by title/author: %w", err)
	}
	return &b, nil
}

// SearchByAuthorAndTitle is a case-insensitive substring search; either filter
// may be empty, both empty returns everything. Zero-based page, id descending.
func (r *BookRepo) SearchByAuthorAndTitle(ctx context.Context, author, title string, page, size int) ([]models.Book, error) {
	q := r.db.WithContext(ctx).Model(&models.Book{})
	if author != "" {
		q = q.Where("author ILIKE ?", "%"+author+"%")
	}
	if title != "" {
		q = q.Where("title ILIKE ?", "%"+title+"%")
	}

	var list []models.Book
	if err := q.
		Preload("BookCategories.Category").
		Order("id desc").
		Limit(size).
		Offset(page * size).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books by author/title: %w", err)
	}
	return list, nil
}

// SearchByCategory returns a distinct page of books linked to a matching
// category, filtered by id and/or case-insensitive name substring.
func (r *BookRepo) SearchByCategory(ctx context.Context, categoryID *int64, categoryName string, page, size int) ([]models.Book, error) {
	q := r.db.WithContext(ctx).Model(&models.Book{}).
		Distinct("books.*").
		Joins("JOIN book_categories bc ON bc.book_id = books.id").
		Joins("JOIN categories c ON c.id = bc.category_id")
	if categoryID != nil {
		q = q.Where("c.id = ?", *categoryID)
	}
	if categoryName != "" {
		q = q.Where("c.name ILIKE ?", "%"+categoryName+"%")
	}

	var list []models.Book
	if err := q.
		Preload("BookCategories.Category").
		Order("books.id desc").
		Limit(size).
		Offset(page * size).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books by category: %w", err)
	}
	return list, nil
}

func (r *BookRepo) Create(ctx context.Context, b *models.Book) error {
	// links are created with the book; the Category side of each link is a
	// preload-only view and must not be upserted here
	if err := r.db.WithContext(ctx).
		Omit("BookCategories.Category").
		Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *BookRepo) Save(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(b).Error; err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

// ReplaceCategories persists a computed link diff in one transaction. Either
// slice may be empty; both empty is a no-op.
func (r *BookRepo) ReplaceCategories(ctx context.Context, bookID int64, removed, added []int64) error {
	if len(removed) == 0 && len(added) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(removed) > 0 {
			if err := tx.
				Where("book_id = ? AND category_id IN ?", bookID, removed).
				Delete(&models.BookCategory{}).Error; err != nil {
				return err
			}
		}
		if len(added) > 0 {
			links := make([]models.BookCategory, 0, len(added))
			for _, cid := range added {
				links = append(links, models.BookCategory{BookID: bookID, CategoryID: cid})
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace book categories: %w", err)
	}
	return nil
}

// Delete removes the book with everything it owns: category links and the
// full rental history.
func (r *BookRepo) Delete(ctx context.Context, bookID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&models.Rental{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", bookID).Delete(&models.BookCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Book{}, bookID).Error
	})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
