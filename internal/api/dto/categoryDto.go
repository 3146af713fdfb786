package dto

import "bookhub/internal/api/models"

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

func FromCategoryModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		BookCount: len(c.BookCategories),
	}
}

func FromCategoryModels(list []models.Category) []CategoryResponse {
	resp := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, FromCategoryModel(c))
	}
	return resp
}
