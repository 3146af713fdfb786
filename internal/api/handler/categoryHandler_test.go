package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhub/internal/api/apperr"
	"bookhub/internal/api/handler"
	"bookhub/internal/api/models"
	"bookhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func setupCategoryRouter(svc service.CategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewCategoryHandler(svc).RegisterRoutes(r.Group("/api/categories"), passthrough, passthrough)
	return r
}

func TestCategoryHandlerList(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("FindAll", mock.Anything).Return([]models.Category{
		{ID: 1, Name: "Fiction", BookCategories: []models.BookCategory{{BookID: 1}, {BookID: 2}}},
		{ID: 2, Name: "IT"},
	}, nil)
	r := setupCategoryRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/categories", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Fiction", resp[0]["name"])
	assert.Equal(t, float64(2), resp[0]["book_count"])
}

func TestCategoryHandlerCreate(t *testing.T) {
	t.Run("returns the stored category", func(t *testing.T) {
		svc := new(MockCategoryService)
		svc.On("Create", mock.Anything, "Science").
			Return(&models.Category{ID: 5, Name: "Science"}, nil)
		r := setupCategoryRouter(svc)

		body, _ := json.Marshal(gin.H{"name": "Science"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(5), resp["id"])
		svc.AssertExpectations(t)
	})

	t.Run("duplicate returns 409", func(t *testing.T) {
		svc := new(MockCategoryService)
		svc.On("Create", mock.Anything, "fiction").
			Return(nil, apperr.Newf(apperr.CategoryAlreadyExists, map[string]any{"name": "fiction"}))
		r := setupCategoryRouter(svc)

		body, _ := json.Marshal(gin.H{"name": "fiction"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CATEGORY_ALREADY_EXISTS", resp["code"])
	})

	t.Run("missing name rejected by binding", func(t *testing.T) {
		svc := new(MockCategoryService)
		r := setupCategoryRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})
}

func TestCategoryHandlerDelete(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		svc := new(MockCategoryService)
		svc.On("Delete", mock.Anything, int64(2)).Return(nil)
		r := setupCategoryRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/categories/2", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		svc := new(MockCategoryService)
		svc.On("Delete", mock.Anything, int64(404)).
			Return(apperr.Newf(apperr.CategoryNotFound, map[string]any{"ids": []int64{404}}))
		r := setupCategoryRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/categories/404", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
