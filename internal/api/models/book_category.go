package models

// explicit join model with its own id; one row per (book, category) pair
type BookCategory struct {
	ID         int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID     int64 `json:"book_id" gorm:"uniqueIndex:uk_book_category;not null"`
	CategoryID int64 `json:"category_id" gorm:"uniqueIndex:uk_book_category;not null"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (BookCategory) TableName() string {
	return "book_categories"
}
