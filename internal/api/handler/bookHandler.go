package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookhub/internal/api/dto"
	"bookhub/internal/api/models"
	"bookhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// RegisterRoutes wires the book endpoints; mutations sit behind auth and
// delete additionally behind admin.
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/search", h.SearchByAuthorAndTitle)
	rg.GET("/search-by-category", h.SearchByCategory)

	rg.POST("", auth, h.Create)
	rg.PUT("/:book_id/categories", auth, h.ChangeCategories)
	rg.PUT("/:book_id/status", auth, h.ChangeStatus)
	rg.DELETE("/:book_id", auth, admin, h.Delete)
}

func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.FindAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModels(list))
}

func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := h.svc.Create(ctx, in.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Restocked {
		status = http.StatusOK
	}
	c.JSON(status, dto.CreateBookResponse{ID: res.ID, Restocked: res.Restocked})
}

func (h *BookHandler) ChangeCategories(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateCategoriesDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.UpdateCategories(ctx, id, in.CategoryIDs); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookHandler) ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.ChangeBookStatusDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.ChangeStatus(ctx, id, models.BookStatus(in.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookHandler) SearchByAuthorAndTitle(c *gin.Context) {
	page, size := pagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.SearchByAuthorAndTitle(ctx, c.Query("author"), c.Query("title"), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModels(list))
}

func (h *BookHandler) SearchByCategory(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		categoryID = &parsed
	}
	page, size := pagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.SearchByCategory(ctx, categoryID, c.Query("category_name"), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModels(list))
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pagination reads the zero-based page and size query params, defaulting to
// page 0 with 10 results.
func pagination(c *gin.Context) (page, size int) {
	page, size = 0, 10
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if s := c.Query("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 && parsed <= 100 {
			size = parsed
		}
	}
	return page, size
}
