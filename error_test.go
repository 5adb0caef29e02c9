package switchback_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
)

func TestNotFoundError(t *testing.T) {
	// Arrange
	err := &switchback.NotFoundError{Request: httptest.NewRequest(http.MethodGet, "/nowhere", nil)}

	// Act + Assert
	require.EqualError(t, err, "not found: GET /nowhere")
	require.ErrorIs(t, err, switchback.ErrNotFound)
	require.Equal(t, http.StatusNotFound, err.StatusCode())
	require.EqualError(t, &switchback.NotFoundError{}, "not found")
}

func TestMethodNotAllowedError(t *testing.T) {
	// Arrange
	err := &switchback.MethodNotAllowedError{Allowed: []string{http.MethodGet, http.MethodPut}}

	// Act + Assert
	require.EqualError(t, err, "method not allowed. Must be one of: GET, PUT")
	require.ErrorIs(t, err, switchback.ErrMethodNotAllowed)
	require.Equal(t, http.StatusMethodNotAllowed, err.StatusCode())
	require.EqualError(t, &switchback.MethodNotAllowedError{}, "method not allowed")
}

func TestStatusCode(t *testing.T) {
	for _, tc := range []struct {
		name     string
		err      error
		expected int
	}{
		{"Not-Found", &switchback.NotFoundError{}, http.StatusNotFound},
		{"Wrapped-Not-Found", fmt.Errorf("routing: %w", &switchback.NotFoundError{}), http.StatusNotFound},
		{"Method-Not-Allowed", &switchback.MethodNotAllowedError{}, http.StatusMethodNotAllowed},
		{"Sentinel", switchback.ErrNotFound, http.StatusInternalServerError},
		{"Other", errors.New("boom"), http.StatusInternalServerError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, switchback.StatusCode(tc.err))
		})
	}
}
