package dto

import (
	"bookhub/internal/api/models"
	"bookhub/internal/api/service"
)

type CreateBookDTO struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Status      string  `json:"status" binding:"omitempty,oneof=AVAILABLE SUSPENDED_DAMAGED SUSPENDED_LOST"`
	Stock       int     `json:"stock"`
	CategoryIDs []int64 `json:"category_ids"`
}

func (d CreateBookDTO) ToInput() service.CreateBookInput {
	return service.CreateBookInput{
		Title:       d.Title,
		Author:      d.Author,
		Status:      models.BookStatus(d.Status),
		Stock:       d.Stock,
		CategoryIDs: d.CategoryIDs,
	}
}

type CreateBookResponse struct {
	ID        int64 `json:"id"`
	Restocked bool  `json:"restocked"`
}

type UpdateCategoriesDTO struct {
	CategoryIDs []int64 `json:"category_ids"`
}

type ChangeBookStatusDTO struct {
	Status string `json:"status" binding:"omitempty,oneof=AVAILABLE SUSPENDED_DAMAGED SUSPENDED_LOST"`
}

type BookResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Status     string   `json:"status"`
	Stock      int      `json:"stock"`
	Categories []string `json:"categories"`
}

func FromBookModel(b models.Book) BookResponse {
	categories := make([]string, 0, len(b.BookCategories))
	for _, bc := range b.BookCategories {
		if bc.Category != nil {
			categories = append(categories, bc.Category.Name)
		}
	}
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Status:     string(b.Status),
		Stock:      b.Stock,
		Categories: categories,
	}
}

func FromBookModels(list []models.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, FromBookModel(b))
	}
	return resp
}
