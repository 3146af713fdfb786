package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookhub/internal/api/apperr"
	"bookhub/internal/api/handler"
	"bookhub/internal/api/models"
	"bookhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Rent(ctx context.Context, bookID int64, renterName string) (*models.Rental, error) {
	args := m.Called(ctx, bookID, renterName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalService) Return(ctx context.Context, rentalID int64) (*models.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalService) Suspend(ctx context.Context, rentalID int64) (*models.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalService) FindAll(ctx context.Context) ([]models.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rental), args.Error(1)
}

func setupRentalRouter(svc service.RentalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewRentalHandler(svc).RegisterRoutes(r.Group("/api/rentals"), passthrough)
	return r
}

func TestRentalHandlerRent(t *testing.T) {
	rentedAt := time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

	t.Run("returns the open rental", func(t *testing.T) {
		svc := new(MockRentalService)
		svc.On("Rent", mock.Anything, int64(3), "Kim Jiyeon").Return(&models.Rental{
			ID:         11,
			BookID:     3,
			RenterName: "Kim Jiyeon",
			Status:     models.RentalRented,
			RentedAt:   rentedAt,
			DueAt:      rentedAt.Add(14 * 24 * time.Hour),
			Book:       &models.Book{ID: 3, Title: "A Lazy Kind of Love"},
		}, nil)
		r := setupRentalRouter(svc)

		body, _ := json.Marshal(gin.H{"book_id": 3, "renter_name": "Kim Jiyeon"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/rentals", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(11), resp["id"])
		assert.Equal(t, "A Lazy Kind of Love", resp["book_title"])
		assert.Equal(t, "RENTED", resp["status"])
		assert.Nil(t, resp["returned_at"])
		svc.AssertExpectations(t)
	})

	t.Run("missing renter name rejected by binding", func(t *testing.T) {
		svc := new(MockRentalService)
		r := setupRentalRouter(svc)

		body, _ := json.Marshal(gin.H{"book_id": 3})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/rentals", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Rent")
	})

	t.Run("stockless book surfaces the domain code", func(t *testing.T) {
		svc := new(MockRentalService)
		svc.On("Rent", mock.Anything, int64(3), "Kim Jiyeon").
			Return(nil, apperr.Newf(apperr.OutOfStock, map[string]any{"id": int64(3)}))
		r := setupRentalRouter(svc)

		body, _ := json.Marshal(gin.H{"book_id": 3, "renter_name": "Kim Jiyeon"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/rentals", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "OUT_OF_STOCK", resp["code"])
	})
}

func TestRentalHandlerReturn(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		svc := new(MockRentalService)
		svc.On("Return", mock.Anything, int64(12)).
			Return(&models.Rental{ID: 12, Status: models.RentalReturned}, nil)
		r := setupRentalRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/rentals/12/return", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("second return is a domain failure", func(t *testing.T) {
		svc := new(MockRentalService)
		svc.On("Return", mock.Anything, int64(12)).
			Return(nil, apperr.New(apperr.AlreadyReturnedOrUnavailable))
		r := setupRentalRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/rentals/12/return", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ALREADY_RETURNED_OR_UNAVAILABLE", resp["code"])
	})
}

func TestRentalHandlerSuspend(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		svc := new(MockRentalService)
		svc.On("Suspend", mock.Anything, int64(13)).
			Return(&models.Rental{ID: 13, Status: models.RentalUnavailable}, nil)
		r := setupRentalRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/rentals/13/suspend", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("suspending a returned rental fails", func(t *testing.T) {
		svc := new(MockRentalService)
		svc.On("Suspend", mock.Anything, int64(13)).
			Return(nil, apperr.Newf(apperr.InvalidRentalSuspendReason, map[string]any{"status": models.RentalReturned}))
		r := setupRentalRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/rentals/13/suspend", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_RENTAL_SUSPEND_REASON", resp["code"])
	})
}

func TestRentalHandlerList(t *testing.T) {
	rentedAt := time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)
	svc := new(MockRentalService)
	svc.On("FindAll", mock.Anything).Return([]models.Rental{
		{
			ID: 1, BookID: 2, RenterName: "Han Jimin",
			Status: models.RentalRented, RentedAt: rentedAt,
			DueAt: rentedAt.Add(14 * 24 * time.Hour),
			Book:  &models.Book{ID: 2, Title: "Market Trends 2322"},
		},
	}, nil)
	r := setupRentalRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/rentals", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Market Trends 2322", resp[0]["book_title"])
}
