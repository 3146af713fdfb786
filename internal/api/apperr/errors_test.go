package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageTemplates(t *testing.T) {
	err := Newf(BookNotFound, map[string]any{"id": int64(42)})
	assert.Equal(t, "book not found (id=42)", err.Error())

	err = Newf(RequiredField, map[string]any{"field": "title"})
	assert.Equal(t, "title is required", err.Error())

	err = Newf(CategoryNotFound, map[string]any{"ids": []int64{1, 2}})
	assert.Equal(t, "category not found (ids=[1 2])", err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, OutOfStock, CodeOf(New(OutOfStock)))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))

	wrapped := fmt.Errorf("rent book: %w", New(OutOfStock))
	assert.Equal(t, OutOfStock, CodeOf(wrapped))
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := Newf(OutOfStock, map[string]any{"id": int64(1)})
	assert.True(t, errors.Is(err, New(OutOfStock)))
	assert.False(t, errors.Is(err, New(BookNotFound)))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(BookNotFound))
	assert.Equal(t, http.StatusConflict, Status(CategoryAlreadyExists))
	assert.Equal(t, http.StatusInternalServerError, Status(Code("NOPE")))
}
