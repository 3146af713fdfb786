package service

import (
	"context"
	"errors"

	"bookhub/internal/api/apperr"
	"bookhub/internal/api/cache"
	"bookhub/internal/api/models"

	"gorm.io/gorm"
)

// BookRepository is the slice of the catalog store the book service needs.
type BookRepository interface {
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetByIDWithCategories(ctx context.Context, id int64) (*models.Book, error)
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.Book, error)
	SearchByAuthorAndTitle(ctx context.Context, author, title string, page, size int) ([]models.Book, error)
	SearchByCategory(ctx context.Context, categoryID *int64, categoryName string, page, size int) ([]models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Save(ctx context.Context, b *models.Book) error
	ReplaceCategories(ctx context.Context, bookID int64, removed, added []int64) error
	Delete(ctx context.Context, bookID int64) error
}

// CreateBookInput is the upsert request: either a new title or a restock of
// an existing (title, author) pair.
type CreateBookInput struct {
	Title       string
	Author      string
	Status      models.BookStatus
	Stock       int
	CategoryIDs []int64
}

// CreateResult tags which branch the upsert took.
type CreateResult struct {
	ID        int64
	Restocked bool
}

type BookService interface {
	FindAll(ctx context.Context) ([]models.Book, error)
	Create(ctx context.Context, in CreateBookInput) (*CreateResult, error)
	UpdateCategories(ctx context.Context, bookID int64, categoryIDs []int64) error
	ChangeStatus(ctx context.Context, bookID int64, status models.BookStatus) error
	SearchByAuthorAndTitle(ctx context.Context, author, title string, page, size int) ([]models.Book, error)
	SearchByCategory(ctx context.Context, categoryID *int64, categoryName string, page, size int) ([]models.Book, error)
	Delete(ctx context.Context, bookID int64) error
}

type bookService struct {
	books      BookRepository
	categories CategoryRepository
	cache      *cache.BookCache
}

// NewBookService wires the book service; cache may be nil.
func NewBookService(books BookRepository, categories CategoryRepository, bookCache *cache.BookCache) BookService {
	return &bookService{books: books, categories: categories, cache: bookCache}
}

func (s *bookService) FindAll(ctx context.Context) ([]models.Book, error) {
	if list, ok := s.cache.GetAll(ctx); ok {
		return list, nil
	}
	list, err := s.books.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetAll(ctx, list)
	return list, nil
}

// Create is the catalog upsert. Category ids are resolved first; a request
// whose (title, author) already exists is treated as a restock and the
// requested status and categories are ignored on that path.
func (s *bookService) Create(ctx context.Context, in CreateBookInput) (*CreateResult, error) {
	cats, err := s.categories.FindAllByIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(cats) != len(in.CategoryIDs) {
		found := make(map[int64]struct{}, len(cats))
		for _, c := range cats {
			found[c.ID] = struct{}{}
		}
		var missing []int64
		for _, id := range in.CategoryIDs {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return nil, apperr.Newf(apperr.CategoryNotFound, map[string]any{"ids": missing})
		}
	}

	existing, err := s.books.FindByTitleAndAuthor(ctx, in.Title, in.Author)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		qty := in.Stock
		if qty <= 0 {
			qty = 1
		}
		if err := existing.IncreaseStock(qty); err != nil {
			return nil, err
		}
		if err := s.books.Save(ctx, existing); err != nil {
			return nil, err
		}
		s.cache.Invalidate(ctx)
		return &CreateResult{ID: existing.ID, Restocked: true}, nil
	}

	book, err := models.NewBook(in.Title, in.Author, cats, in.Status, in.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &CreateResult{ID: book.ID}, nil
}

// UpdateCategories syncs the book's link set to the requested ids (set diff).
// Every id must resolve before any link is touched.
func (s *bookService) UpdateCategories(ctx context.Context, bookID int64, categoryIDs []int64) error {
	book, err := s.books.GetByIDWithCategories(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.BookNotFound, map[string]any{"id": bookID})
	}
	if err != nil {
		return err
	}

	distinct := dedupe(categoryIDs)
	targets, err := s.categories.FindAllByIDs(ctx, distinct)
	if err != nil {
		return err
	}
	if len(targets) != len(distinct) {
		return apperr.Newf(apperr.CategoryNotFound, map[string]any{"ids": distinct})
	}

	removed, added := book.ChangeCategories(targets)
	if err := s.books.ReplaceCategories(ctx, bookID, removed, added); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ChangeStatus sets a new book status. Setting the status the book already
// holds performs no write.
func (s *bookService) ChangeStatus(ctx context.Context, bookID int64, status models.BookStatus) error {
	book, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.BookNotFound, map[string]any{"id": bookID})
	}
	if err != nil {
		return err
	}

	if book.Status == status {
		return nil
	}
	if err := book.ChangeStatus(status); err != nil {
		return err
	}
	if err := s.books.Save(ctx, book); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *bookService) SearchByAuthorAndTitle(ctx context.Context, author, title string, page, size int) ([]models.Book, error) {
	return s.books.SearchByAuthorAndTitle(ctx, author, title, page, size)
}

func (s *bookService) SearchByCategory(ctx context.Context, categoryID *int64, categoryName string, page, size int) ([]models.Book, error) {
	return s.books.SearchByCategory(ctx, categoryID, categoryName, page, size)
}

func (s *bookService) Delete(ctx context.Context, bookID int64) error {
	if _, err := s.books.GetByIDWithCategories(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.BookNotFound, map[string]any{"id": bookID})
		}
		return err
	}
	if err := s.books.Delete(ctx, bookID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// dedupe collapses duplicates, keeping first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
