package main

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/logger"
	"go.opentelemetry.io/otel/trace/noop"
)

func testRouter(t *testing.T, cfg switchback.Config) http.Handler {
	t.Helper()
	ls := logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
	rt := newRouter(cfg, ls, prometheus.NewRegistry(), noop.NewTracerProvider())
	require.NoError(t, rt.Freeze())
	return rt
}

func TestApp(t *testing.T) {
	h := testRouter(t, switchback.Config{Env: switchback.Testing, BasePath: "/app"})

	for _, tc := range []struct {
		name   string
		method string
		target string
		body   string
		ctype  string
		code   int
		expect string
	}{
		{"Index", http.MethodGet, "/app/", "", "", http.StatusOK, `"users.show":"/app/api/users/1"`},
		{"Health", http.MethodGet, "/app/health", "", "", http.StatusOK, `{"status":"ok"}`},
		{"Blog", http.MethodGet, "/app/blog", "", "", http.StatusOK, "all posts"},
		{"Blog-Post", http.MethodGet, "/app/blog/hello", "", "", http.StatusOK, "post: hello"},
		{"Users", http.MethodGet, "/app/api/users", "", "", http.StatusOK, `[{"id":1,"name":"Ada"},{"id":2,"name":"Grace"}]`},
		{"User", http.MethodGet, "/app/api/users/2", "", "", http.StatusOK, `{"id":2,"name":"Grace"}`},
		{"User-Missing", http.MethodGet, "/app/api/users/9", "", "", http.StatusNotFound, "not found"},
		{"User-Bad-ID", http.MethodGet, "/app/api/users/abc", "", "", http.StatusNotFound, "not found"},
		{"Create", http.MethodPost, "/app/api/users", `{"name":"Linus"}`, "application/json", http.StatusCreated, `"name":"Linus"`},
		{"Create-Empty", http.MethodPost, "/app/api/users", `{}`, "application/json", http.StatusUnprocessableEntity, "name is required"},
		{"Create-Not-JSON", http.MethodPost, "/app/api/users", `name=x`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType, "expected application/json"},
		{"Method-Not-Allowed", http.MethodDelete, "/app/api/users", "", "", http.StatusMethodNotAllowed, "Must be one of: GET, POST"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			if tc.ctype != "" {
				r.Header.Set("Content-Type", tc.ctype)
			}

			// Act
			h.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Body.String(), tc.expect)
			require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestAppRateLimit(t *testing.T) {
	// Arrange
	h := testRouter(t, switchback.Config{Env: switchback.Testing, RateLimit: 1, Burst: 1})

	// Act
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Assert
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRoutesCmd(t *testing.T) {
	// Arrange
	t.Setenv("SWITCHBACK_BASE_PATH", "/app")
	t.Setenv("SWITCHBACK_LOG_LEVEL", "ERROR")
	cmd := rootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"routes"})

	// Act
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Contains(t, out.String(), "METHODS")
	require.Contains(t, out.String(), "/app/api/users/{id:[0-9]+}")
	require.Contains(t, out.String(), "users:Show")
	require.Contains(t, out.String(), "users.show")
}

func TestVersionCmd(t *testing.T) {
	// Arrange
	cmd := rootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version", "--short"})

	// Act
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Equal(t, "dev\n", out.String())
}
