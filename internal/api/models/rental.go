package models

import (
	"time"

	"bookhub/internal/api/apperr"
)

type RentalStatus string

const (
	RentalRented      RentalStatus = "RENTED"
	RentalReturned    RentalStatus = "RETURNED"
	RentalUnavailable RentalStatus = "UNAVAILABLE"
)

// IsActive reports whether the rental is still open. RETURNED and UNAVAILABLE
// are terminal.
func (s RentalStatus) IsActive() bool {
	return s == RentalRented
}

// RentalPeriod is the fixed loan window; due date = rented date + this.
const RentalPeriod = 14 * 24 * time.Hour

type Rental struct {
	ID         int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID     int64        `json:"book_id" gorm:"index;not null"`
	RenterName string       `json:"renter_name" gorm:"not null;size:50"`
	Status     RentalStatus `json:"status" gorm:"column:rental_status;not null;size:32"`
	RentedAt   time.Time    `json:"rented_at" gorm:"not null"`
	DueAt      time.Time    `json:"due_at" gorm:"not null"`
	ReturnedAt *time.Time   `json:"returned_at,omitempty"`

	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
}

func (Rental) TableName() string {
	return "rentals"
}

func NewRental(book *Book, renterName string, now time.Time) *Rental {
	return &Rental{
		BookID:     book.ID,
		Book:       book,
		RenterName: renterName,
		Status:     RentalRented,
		RentedAt:   now,
		DueAt:      now.Add(RentalPeriod),
	}
}

// Return closes an open rental. Terminal rentals stay as they are.
func (r *Rental) Return(now time.Time) error {
	if !r.Status.IsActive() {
		return apperr.New(apperr.AlreadyReturnedOrUnavailable)
	}
	r.Status = RentalReturned
	r.ReturnedAt = &now
	return nil
}

// MarkUnavailable closes an open rental without a return (damaged/lost copy).
func (r *Rental) MarkUnavailable() error {
	if !r.Status.IsActive() {
		return apperr.New(apperr.AlreadyReturnedOrUnavailable)
	}
	r.Status = RentalUnavailable
	return nil
}
