package models

import (
	"strings"

	"bookhub/internal/api/apperr"
)

type BookStatus string

const (
	BookAvailable        BookStatus = "AVAILABLE"
	BookSuspendedDamaged BookStatus = "SUSPENDED_DAMAGED"
	BookSuspendedLost    BookStatus = "SUSPENDED_LOST"
)

// IsRentable reports whether new rentals may be opened against this status.
func (s BookStatus) IsRentable() bool {
	return s == BookAvailable
}

func (s BookStatus) Valid() bool {
	switch s {
	case BookAvailable, BookSuspendedDamaged, BookSuspendedLost:
		return true
	}
	return false
}

type Book struct {
	ID     int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title  string     `json:"title" gorm:"not null;size:120"`
	Author string     `json:"author" gorm:"not null;size:80"`
	Status BookStatus `json:"status" gorm:"column:book_status;not null;size:32"`
	Stock  int        `json:"stock" gorm:"not null"`

	// associations
	BookCategories []BookCategory `json:"book_categories,omitempty" gorm:"foreignKey:BookID"`
	Rentals        []Rental       `json:"-" gorm:"foreignKey:BookID"`
}

func (Book) TableName() string {
	return "books"
}

// NewBook builds a catalog entry with its initial category links.
// Duplicate categories in the input collapse to a single link.
func NewBook(title, author string, categories []Category, status BookStatus, stock int) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Newf(apperr.RequiredField, map[string]any{"field": "title"})
	}
	if strings.TrimSpace(author) == "" {
		return nil, apperr.Newf(apperr.RequiredField, map[string]any{"field": "author"})
	}
	if len(categories) == 0 {
		return nil, apperr.New(apperr.CategoryRequired)
	}
	if stock < 0 {
		return nil, apperr.New(apperr.InvalidStockQuantity)
	}
	if status == "" {
		status = BookAvailable
	}

	b := &Book{
		Title:  title,
		Author: author,
		Status: status,
		Stock:  stock,
	}
	for _, c := range categories {
		b.AddCategory(c)
	}
	return b, nil
}

// IncreaseStock adds qty copies. qty must be at least 1.
func (b *Book) IncreaseStock(qty int) error {
	if qty < 1 {
		return apperr.New(apperr.StockIncreaseAmountInvalid)
	}
	b.Stock += qty
	return nil
}

// DecreaseStock removes qty copies; stock never goes negative.
func (b *Book) DecreaseStock(qty int) error {
	if qty < 1 {
		return apperr.New(apperr.StockDecreaseAmountInvalid)
	}
	if b.Stock < qty {
		return apperr.Newf(apperr.OutOfStock, map[string]any{"id": b.ID})
	}
	b.Stock -= qty
	return nil
}

func (b *Book) ChangeStatus(newStatus BookStatus) error {
	if newStatus == "" {
		return apperr.New(apperr.BookStatusNull)
	}
	b.Status = newStatus
	return nil
}

func (b *Book) HasCategory(categoryID int64) bool {
	for _, bc := range b.BookCategories {
		if bc.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// AddCategory links the book to a category, skipping links that already exist.
func (b *Book) AddCategory(c Category) {
	if b.HasCategory(c.ID) {
		return
	}
	cat := c
	b.BookCategories = append(b.BookCategories, BookCategory{
		BookID:     b.ID,
		CategoryID: c.ID,
		Category:   &cat,
	})
}

// ChangeCategories synchronizes the link set to targets using a set diff over
// ids, mutating the in-memory links, and returns the applied diff so the
// store can persist exactly the removed and added links. Both returned slices
// are empty when the target set already matches.
func (b *Book) ChangeCategories(targets []Category) (removed, added []int64) {
	targetIDs := make(map[int64]struct{}, len(targets))
	targetOrder := make([]int64, 0, len(targets))
	byID := make(map[int64]Category, len(targets))
	for _, c := range targets {
		if _, seen := targetIDs[c.ID]; seen {
			continue
		}
		targetIDs[c.ID] = struct{}{}
		targetOrder = append(targetOrder, c.ID)
		byID[c.ID] = c
	}

	currentIDs := make(map[int64]struct{}, len(b.BookCategories))
	for _, bc := range b.BookCategories {
		currentIDs[bc.CategoryID] = struct{}{}
	}

	// detach links that are no longer wanted
	kept := b.BookCategories[:0]
	for _, bc := range b.BookCategories {
		if _, keep := targetIDs[bc.CategoryID]; keep {
			kept = append(kept, bc)
		} else {
			removed = append(removed, bc.CategoryID)
		}
	}
	b.BookCategories = kept

	// link the new ones, in target order
	for _, cid := range targetOrder {
		if _, exists := currentIDs[cid]; exists {
			continue
		}
		b.AddCategory(byID[cid])
		added = append(added, cid)
	}
	return removed, added
}
