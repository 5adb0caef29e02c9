package logger_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

type testRoute struct{}

func (testRoute) Identifier() string { return "route-1" }
func (testRoute) Methods() []string  { return []string{http.MethodGet} }
func (testRoute) Name() string       { return "users.show" }
func (testRoute) Pattern() string    { return "/users/{id}" }

func TestLogContextMarshalText(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "https://example.com/users/1", nil)
	r = switchback.WithAttribute(r, switchback.RequestIDKey, "req-1")

	for _, tc := range []struct {
		name     string
		lc       logger.LogContext
		expected map[string]any
	}{
		{"Zero-Value", logger.LogContext{}, map[string]any{}},
		{
			"Data",
			logger.LogContext{Data: map[string]any{"test": "data"}},
			map[string]any{"data": map[string]any{"test": "data"}},
		},
		{
			"Error",
			logger.LogContext{Error: errors.New("test")},
			map[string]any{"error": "test"},
		},
		{
			"Caller-Skipped",
			logger.LogContext{Caller: "main.go:1"},
			map[string]any{},
		},
		{
			"Request",
			logger.LogContext{Request: r},
			map[string]any{"request": map[string]any{
				"id":     "req-1",
				"method": http.MethodGet,
				"url":    "https://example.com/users/1",
			}},
		},
		{
			"Route",
			logger.LogContext{Route: testRoute{}},
			map[string]any{"route": map[string]any{
				"id":      "route-1",
				"name":    "users.show",
				"pattern": "/users/{id}",
			}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			b, err := tc.lc.MarshalText()

			// Assert
			require.Nil(t, err)
			actual := make(map[string]any)
			require.Nil(t, json.Unmarshal(b, &actual))
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestLogContextStringBadData(t *testing.T) {
	// Arrange
	lc := logger.LogContext{Data: map[string]any{"ch": make(chan int)}}

	// Act
	actual := lc.String()

	// Assert
	require.Contains(t, actual, `"error"`)
}
