package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookhub/internal/api/dto"
	"bookhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct {
	svc service.RentalService
}

func NewRentalHandler(svc service.RentalService) *RentalHandler {
	return &RentalHandler{svc: svc}
}

func (h *RentalHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", auth, h.Rent)
	rg.PUT("/:rental_id/return", auth, h.Return)
	rg.PUT("/:rental_id/suspend", auth, h.Suspend)
}

func (h *RentalHandler) Rent(c *gin.Context) {
	var in dto.RentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rental, err := h.svc.Rent(ctx, in.BookID, in.RenterName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRentalModel(*rental))
}

func (h *RentalHandler) Return(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rental_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.svc.Return(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RentalHandler) Suspend(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rental_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.svc.Suspend(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RentalHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.FindAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRentalModels(list))
}
