package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"bookhub/internal/api/apperr"
	"bookhub/internal/api/models"

	"gorm.io/gorm"
)

// RentalRepository is the slice of the catalog store the rental lifecycle
// needs. The *WithBook writes pair a rental transition with the stock change
// on its book in one unit of work.
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Rental, error)
	GetAllWithBook(ctx context.Context) ([]models.Rental, error)
	CreateWithBook(ctx context.Context, rental *models.Rental, book *models.Book) error
	SaveWithBook(ctx context.Context, rental *models.Rental, book *models.Book) error
	Save(ctx context.Context, rental *models.Rental) error
}

type RentalService interface {
	Rent(ctx context.Context, bookID int64, renterName string) (*models.Rental, error)
	Return(ctx context.Context, rentalID int64) (*models.Rental, error)
	Suspend(ctx context.Context, rentalID int64) (*models.Rental, error)
	FindAll(ctx context.Context) ([]models.Rental, error)
}

type rentalService struct {
	rentals RentalRepository
	books   BookRepository
	now     func() time.Time
}

// NewRentalService wires the rental lifecycle. now is the clock used for
// rented/due/returned timestamps; pass nil for time.Now.
func NewRentalService(rentals RentalRepository, books BookRepository, now func() time.Time) RentalService {
	if now == nil {
		now = time.Now
	}
	return &rentalService{rentals: rentals, books: books, now: now}
}

// Rent reserves one copy and opens a rental. The status gate runs before the
// stock ledger: a non-rentable book reports OUT_OF_STOCK when it also has no
// stock, BOOK_NOT_AVAILABLE otherwise.
func (s *rentalService) Rent(ctx context.Context, bookID int64, renterName string) (*models.Rental, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.BookNotFound, map[string]any{"id": bookID})
	}
	if err != nil {
		return nil, err
	}

	if !book.Status.IsRentable() {
		if book.Stock <= 0 {
			return nil, apperr.Newf(apperr.OutOfStock, map[string]any{"id": bookID})
		}
		return nil, apperr.Newf(apperr.BookNotAvailable, map[string]any{"id": bookID})
	}

	if err := book.DecreaseStock(1); err != nil {
		return nil, err
	}

	rental := models.NewRental(book, renterName, s.now())
	if err := s.rentals.CreateWithBook(ctx, rental, book); err != nil {
		return nil, err
	}
	return rental, nil
}

// Return closes an open rental and puts the copy back in stock.
func (s *rentalService) Return(ctx context.Context, rentalID int64) (*models.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.RentalNotFound, map[string]any{"id": rentalID})
	}
	if err != nil {
		return nil, err
	}

	if err := rental.Return(s.now()); err != nil {
		return nil, err
	}
	if err := rental.Book.IncreaseStock(1); err != nil {
		return nil, err
	}
	if err := s.rentals.SaveWithBook(ctx, rental, rental.Book); err != nil {
		return nil, err
	}
	return rental, nil
}

// Suspend closes a rental for a damaged or lost copy. The book's stock is
// left untouched: the copy is gone, not returned.
func (s *rentalService) Suspend(ctx context.Context, rentalID int64) (*models.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.RentalNotFound, map[string]any{"id": rentalID})
	}
	if err != nil {
		return nil, err
	}

	if rental.Status == models.RentalReturned {
		return nil, apperr.Newf(apperr.InvalidRentalSuspendReason, map[string]any{"status": rental.Status})
	}

	if err := rental.MarkUnavailable(); err != nil {
		return nil, err
	}
	if err := s.rentals.Save(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// FindAll lists every rental with its book, most recent first.
func (s *rentalService) FindAll(ctx context.Context) ([]models.Rental, error) {
	list, err := s.rentals.GetAllWithBook(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].RentedAt.After(list[j].RentedAt)
	})
	return list, nil
}
