package service_test

import (
	"context"

	"bookhub/internal/api/models"

	"gorm.io/gorm"
)

// Function-field fakes so each test pins down only the calls it cares about.
// Unset fields report record-not-found for reads and succeed for writes.

type fakeBookRepo struct {
	GetAllFn                 func(ctx context.Context) ([]models.Book, error)
	GetByIDFn                func(ctx context.Context, id int64) (*models.Book, error)
	GetByIDWithCategoriesFn  func(ctx context.Context, id int64) (*models.Book, error)
	FindByTitleAndAuthorFn   func(ctx context.Context, title, author string) (*models.Book, error)
	SearchByAuthorAndTitleFn func(ctx context.Context, author, title string, page, size int) ([]models.Book, error)
	SearchByCategoryFn       func(ctx context.Context, categoryID *int64, categoryName string, page, size int) ([]models.Book, error)
	CreateFn                 func(ctx context.Context, b *models.Book) error
	SaveFn                   func(ctx context.Context, b *models.Book) error
	ReplaceCategoriesFn      func(ctx context.Context, bookID int64, removed, added []int64) error
	DeleteFn                 func(ctx context.Context, bookID int64) error
}

func (f *fakeBookRepo) GetAll(ctx context.Context) ([]models.Book, error) {
	if f.GetAllFn == nil {
		return nil, nil
	}
	return f.GetAllFn(ctx)
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	if f.GetByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeBookRepo) GetByIDWithCategories(ctx context.Context, id int64) (*models.Book, error) {
	if f.GetByIDWithCategoriesFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByIDWithCategoriesFn(ctx, id)
}

func (f *fakeBookRepo) FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.Book, error) {
	if f.FindByTitleAndAuthorFn == nil {
		return nil, nil
	}
	return f.FindByTitleAndAuthorFn(ctx, title, author)
}

func (f *fakeBookRepo) SearchByAuthorAndTitle(ctx context.Context, author, title string, page, size int) ([]models.Book, error) {
	if f.SearchByAuthorAndTitleFn == nil {
		return nil, nil
	}
	return f.SearchByAuthorAndTitleFn(ctx, author, title, page, size)
}

func (f *fakeBookRepo) SearchByCategory(ctx context.Context, categoryID *int64, categoryName string, page, size int) ([]models.Book, error) {
	if f.SearchByCategoryFn == nil {
		return nil, nil
	}
	return f.SearchByCategoryFn(ctx, categoryID, categoryName, page, size)
}

func (f *fakeBookRepo) Create(ctx context.Context, b *models.Book) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, b)
}

func (f *fakeBookRepo) Save(ctx context.Context, b *models.Book) error {
	if f.SaveFn == nil {
		return nil
	}
	return f.SaveFn(ctx, b)
}

func (f *fakeBookRepo) ReplaceCategories(ctx context.Context, bookID int64, removed, added []int64) error {
	if f.ReplaceCategoriesFn == nil {
		return nil
	}
	return f.ReplaceCategoriesFn(ctx, bookID, removed, added)
}

func (f *fakeBookRepo) Delete(ctx context.Context, bookID int64) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, bookID)
}

type fakeCategoryRepo struct {
	GetAllFn                 func(ctx context.Context) ([]models.Category, error)
	GetByIDFn                func(ctx context.Context, id int64) (*models.Category, error)
	FindAllByIDsFn           func(ctx context.Context, ids []int64) ([]models.Category, error)
	CreateFn                 func(ctx context.Context, c *models.Category) error
	ExistsByNameIgnoreCaseFn func(ctx context.Context, name string) (bool, error)
	DeleteFn                 func(ctx context.Context, categoryID int64) error
}

func (f *fakeCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	if f.GetAllFn == nil {
		return nil, nil
	}
	return f.GetAllFn(ctx)
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	if f.GetByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeCategoryRepo) FindAllByIDs(ctx context.Context, ids []int64) ([]models.Category, error) {
	if f.FindAllByIDsFn == nil {
		return nil, nil
	}
	return f.FindAllByIDsFn(ctx, ids)
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, c)
}

func (f *fakeCategoryRepo) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	if f.ExistsByNameIgnoreCaseFn == nil {
		return false, nil
	}
	return f.ExistsByNameIgnoreCaseFn(ctx, name)
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, categoryID int64) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, categoryID)
}

type fakeRentalRepo struct {
	GetByIDFn        func(ctx context.Context, id int64) (*models.Rental, error)
	GetAllWithBookFn func(ctx context.Context) ([]models.Rental, error)
	CreateWithBookFn func(ctx context.Context, rental *models.Rental, book *models.Book) error
	SaveWithBookFn   func(ctx context.Context, rental *models.Rental, book *models.Book) error
	SaveFn           func(ctx context.Context, rental *models.Rental) error
}

func (f *fakeRentalRepo) GetByID(ctx context.Context, id int64) (*models.Rental, error) {
	if f.GetByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeRentalRepo) GetAllWithBook(ctx context.Context) ([]models.Rental, error) {
	if f.GetAllWithBookFn == nil {
		return nil, nil
	}
	return f.GetAllWithBookFn(ctx)
}

func (f *fakeRentalRepo) CreateWithBook(ctx context.Context, rental *models.Rental, book *models.Book) error {
	if f.CreateWithBookFn == nil {
		return nil
	}
	return f.CreateWithBookFn(ctx, rental, book)
}

func (f *fakeRentalRepo) SaveWithBook(ctx context.Context, rental *models.Rental, book *models.Book) error {
	if f.SaveWithBookFn == nil {
		return nil
	}
	return f.SaveWithBookFn(ctx, rental, book)
}

func (f *fakeRentalRepo) Save(ctx context.Context, rental *models.Rental) error {
	if f.SaveFn == nil {
		return nil
	}
	return f.SaveFn(ctx, rental)
}
