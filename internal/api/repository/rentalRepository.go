package repository

import (
	"context"
	"fmt"

	"bookhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RentalRepo struct {
	db *gorm.DB
}

func NewRentalRepo(db *gorm.DB) *RentalRepo {
	return &RentalRepo{db: db}
}

func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.WithContext(ctx).
		Preload("Book").
		First(&rental, id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

// GetAllWithBook loads every rental with its book eagerly attached.
func (r *RentalRepo) GetAllWithBook(ctx context.Context) ([]models.Rental, error) {
	var list []models.Rental
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get rentals: %w", err)
	}
	return list, nil
}

// CreateWithBook persists a new rental and the stock change on its book as
// one unit of work.
func (r *RentalRepo) CreateWithBook(ctx context.Context, rental *models.Rental, book *models.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			return err
		}
		return tx.Omit("Book").Create(rental).Error
	})
	if err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	return nil
}

// SaveWithBook persists a rental transition and the stock change on its book
// as one unit of work.
func (r *RentalRepo) SaveWithBook(ctx context.Context, rental *models.Rental, book *models.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			return err
		}
		return tx.Omit("Book").Save(rental).Error
	})
	if err != nil {
		return fmt.Errorf("save rental: %w", err)
	}
	return nil
}

func (r *RentalRepo) Save(ctx context.Context, rental *models.Rental) error {
	if err := r.db.WithContext(ctx).
		Omit("Book").
		Save(rental).Error; err != nil {
		return fmt.Errorf("save rental: %w", err)
	}
	return nil
}
