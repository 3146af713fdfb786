package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code identifies a domain rule violation. The request layer maps codes to
// HTTP statuses; everything else about a failure travels in Args.
type Code string

const (
	InvalidArgument Code = "INVALID_ARGUMENT"
	RequiredField   Code = "REQUIRED_FIELD"

	BookNotFound     Code = "BOOK_NOT_FOUND"
	BookStatusNull   Code = "BOOK_STATUS_NULL"
	BookNotAvailable Code = "BOOK_NOT_AVAILABLE"

	OutOfStock                 Code = "OUT_OF_STOCK"
	InvalidStockQuantity       Code = "INVALID_STOCK_QUANTITY"
	StockIncreaseAmountInvalid Code = "STOCK_INCREASE_AMOUNT_INVALID"
	StockDecreaseAmountInvalid Code = "STOCK_DECREASE_AMOUNT_INVALID"

	CategoryNotFound      Code = "CATEGORY_NOT_FOUND"
	CategoryAlreadyExists Code = "CATEGORY_ALREADY_EXISTS"
	CategoryRequired      Code = "CATEGORY_REQUIRED"

	RentalNotFound               Code = "RENTAL_NOT_FOUND"
	InvalidRentalSuspendReason   Code = "INVALID_RENTAL_SUSPEND_REASON"
	AlreadyReturnedOrUnavailable Code = "ALREADY_RETURNED_OR_UNAVAILABLE"
)

var messages = map[Code]string{
	InvalidArgument: "invalid request",
	RequiredField:   "{field} is required",

	BookNotFound:     "book not found (id={id})",
	BookStatusNull:   "book status cannot be changed to empty",
	BookNotAvailable: "book is not in a rentable state (id={id})",

	OutOfStock:                 "book is out of stock (id={id})",
	InvalidStockQuantity:       "stock quantity cannot be negative",
	StockIncreaseAmountInvalid: "increase amount must be at least 1",
	StockDecreaseAmountInvalid: "decrease amount must be at least 1",

	CategoryNotFound:      "category not found (ids={ids})",
	CategoryAlreadyExists: "category already exists: {name}",
	CategoryRequired:      "a new book needs at least one category",

	RentalNotFound:               "rental not found (id={id})",
	InvalidRentalSuspendReason:   "invalid reason to suspend this rental",
	AlreadyReturnedOrUnavailable: "rental was already returned or marked unavailable",
}

var statuses = map[Code]int{
	InvalidArgument: http.StatusBadRequest,
	RequiredField:   http.StatusBadRequest,

	BookNotFound:     http.StatusNotFound,
	BookStatusNull:   http.StatusBadRequest,
	BookNotAvailable: http.StatusBadRequest,

	OutOfStock:                 http.StatusBadRequest,
	InvalidStockQuantity:       http.StatusBadRequest,
	StockIncreaseAmountInvalid: http.StatusBadRequest,
	StockDecreaseAmountInvalid: http.StatusBadRequest,

	CategoryNotFound:      http.StatusNotFound,
	CategoryAlreadyExists: http.StatusConflict,
	CategoryRequired:      http.StatusBadRequest,

	RentalNotFound:               http.StatusNotFound,
	InvalidRentalSuspendReason:   http.StatusBadRequest,
	AlreadyReturnedOrUnavailable: http.StatusBadRequest,
}

// Error is a domain failure: one code plus named context values.
type Error struct {
	Code Code
	Args map[string]any
}

func New(code Code) *Error {
	return &Error{Code: code}
}

func Newf(code Code, args map[string]any) *Error {
	return &Error{Code: code, Args: args}
}

func (e *Error) Error() string {
	return apply(messages[e.Code], e.Args)
}

// Is lets errors.Is match two domain errors by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the domain code from err, or "" for non-domain errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ArgsOf extracts the context args from err, nil for non-domain errors.
func ArgsOf(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Args
	}
	return nil
}

// Status returns the HTTP status a code maps to; unknown codes are a 500.
func Status(code Code) int {
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func apply(template string, args map[string]any) string {
	out := template
	for k, v := range args {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return out
}
