package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewConflict("busy", map[string]any{"id": "x"})
	mapped := ToDomainError(original)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsNoRows(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("fetch: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestIsCode(t *testing.T) {
	err := NewIllegalTransition("nope", nil)
	assert.True(t, IsCode(err, "ILLEGAL_TRANSITION"))
	assert.False(t, IsCode(err, "CONFLICT"))
	assert.False(t, IsCode(nil, "CONFLICT"))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsCode(wrapped, "ILLEGAL_TRANSITION"))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewInternalError(inner)
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.ErrorIs(t, domainErr, inner)
}
