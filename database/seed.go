package database

import (
	"fmt"
	"log/slog"
	"time"

	"bookhub/internal/api/models"

	"gorm.io/gorm"
)

// SeedIfEmpty loads a starter catalog when the books table has no rows:
// five categories, fifteen single-copy books and five open rentals.
func SeedIfEmpty(db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := []models.Category{
			{Name: "Fiction"},
			{Name: "Business"},
			{Name: "Humanities"},
			{Name: "IT"},
			{Name: "Science"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		fiction, business, humanities, it, science := categories[0], categories[1], categories[2], categories[3], categories[4]

		seeds := []struct {
			title    string
			author   string
			category models.Category
		}{
			{"The Words I Never Said", "Harper Quinn", fiction},
			{"Simple and Satisfied", "June Calloway", fiction},
			{"A Lazy Kind of Love", "Harper Quinn", fiction},
			{"Market Trends 2322", "Harper Quinn", business},
			{"The Leapfrog Investor", "Theo Marsh", business},
			{"Quant Investing for the Impatient", "Sam Porter", business},
			{"Dinner Before Honesty", "Elena Voss", humanities},
			{"Stop Thinking About Failure", "Victor Sun", humanities},
			{"Silicon Valley Leadership, Made Easy", "Jay Seol", it},
			{"A Programming for Data Analysis", "Jay Seol", it},
			{"Artificial Intelligence 1-12", "Theo Marsh", it},
			{"Minus One Years a Game Developer", "Victor Sun", it},
			{"Skye's Guide to Skin Rendering", "Harper Quinn", it},
			{"How Nature Develops", "Jamie Chang", science},
			{"When the Cosmos Blooms", "Lee Seung", science},
		}

		books := make([]*models.Book, 0, len(seeds))
		for _, s := range seeds {
			b, err := models.NewBook(s.title, s.author, []models.Category{s.category}, models.BookAvailable, 1)
			if err != nil {
				return fmt.Errorf("seed book %q: %w", s.title, err)
			}
			if err := tx.Omit("BookCategories.Category").Create(b).Error; err != nil {
				return fmt.Errorf("seed book %q: %w", s.title, err)
			}
			books = append(books, b)
		}

		now := time.Now()
		openRentals := []struct {
			book   *models.Book
			renter string
		}{
			{books[0], "Kim Jiyeon"},
			{books[3], "Lee Dohyun"},
			{books[6], "Park Seoyeon"},
			{books[8], "Jung Woosung"},
			{books[14], "Han Jimin"},
		}
		for _, r := range openRentals {
			if err := r.book.DecreaseStock(1); err != nil {
				return fmt.Errorf("seed rental for %q: %w", r.book.Title, err)
			}
			if err := tx.Omit("BookCategories").Save(r.book).Error; err != nil {
				return fmt.Errorf("seed rental for %q: %w", r.book.Title, err)
			}
			rental := models.NewRental(r.book, r.renter, now)
			if err := tx.Omit("Book").Create(rental).Error; err != nil {
				return fmt.Errorf("seed rental for %q: %w", r.book.Title, err)
			}
		}

		logger.Info("Seeded starter catalog",
			"categories", len(categories),
			"books", len(books),
			"rentals", len(openRentals))
		return nil
	})
}
