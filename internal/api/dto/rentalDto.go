package dto

import (
	"time"

	"bookhub/internal/api/models"
)

type RentDTO struct {
	BookID     int64  `json:"book_id" binding:"required"`
	RenterName string `json:"renter_name" binding:"required"`
}

type RentResponse struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"`
	RenterName string     `json:"renter_name"`
	Status     string     `json:"status"`
	RentedAt   time.Time  `json:"rented_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func FromRentalModel(r models.Rental) RentResponse {
	resp := RentResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		RenterName: r.RenterName,
		Status:     string(r.Status),
		RentedAt:   r.RentedAt,
		DueAt:      r.DueAt,
		ReturnedAt: r.ReturnedAt,
	}
	if r.Book != nil {
		resp.BookTitle = r.Book.Title
	}
	return resp
}

func FromRentalModels(list []models.Rental) []RentResponse {
	resp := make([]RentResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, FromRentalModel(r))
	}
	return resp
}
