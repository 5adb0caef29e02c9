package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
)

// recorder returns a Middleware appending its name before and after calling next.
func recorder(name string, calls *[]string) middleware.Middleware {
	return middleware.Func(func(r *http.Request, next middleware.Handler) (*msg.Response, error) {
		*calls = append(*calls, name)
		res, err := next.Handle(r)
		*calls = append(*calls, name)
		return res, err
	})
}

func kernel(calls *[]string) middleware.Handler {
	return middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		*calls = append(*calls, "kernel")
		return msg.NewResponse(http.StatusOK), nil
	})
}

func TestDispatcherLIFO(t *testing.T) {
	// Arrange
	var calls []string
	d := middleware.NewDispatcher(kernel(&calls))
	d.Add(recorder("a", &calls))
	d.Add(recorder("b", &calls))

	// Act
	res, err := d.Handle(httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, []string{"b", "a", "kernel", "a", "b"}, calls)
}

func TestDispatcherNoMiddleware(t *testing.T) {
	// Arrange
	var calls []string
	d := middleware.NewDispatcher(kernel(&calls))

	// Act
	_, err := d.Handle(httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"kernel"}, calls)
}

func TestDispatcherSeed(t *testing.T) {
	// Arrange
	var calls []string
	inner := middleware.NewDispatcher(kernel(&calls))
	inner.Add(recorder("inner", &calls))

	outer := middleware.NewDispatcher(middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		t.Fatal("discarded kernel called")
		return nil, nil
	}))
	outer.Add(recorder("discarded", &calls))

	// Act
	outer.Seed(inner)
	outer.Add(recorder("outer", &calls))
	_, err := outer.Handle(httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"outer", "inner", "kernel", "inner", "outer"}, calls)
}

func TestDispatcherErrorPropagates(t *testing.T) {
	// Arrange
	boom := errors.New("boom")
	var calls []string
	d := middleware.NewDispatcher(middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		return nil, boom
	}))
	d.Add(recorder("a", &calls))

	// Act
	res, err := d.Handle(httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Nil(t, res)
	require.Same(t, boom, err)
	require.Equal(t, []string{"a", "a"}, calls)
}

func TestDispatcherShortCircuit(t *testing.T) {
	// Arrange
	var calls []string
	d := middleware.NewDispatcher(kernel(&calls))
	d.Add(middleware.Func(func(r *http.Request, next middleware.Handler) (*msg.Response, error) {
		return msg.NewResponse(http.StatusUnauthorized), nil
	}))

	// Act
	res, err := d.Handle(httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Empty(t, calls)
}

func TestNoop(t *testing.T) {
	// Arrange
	var calls []string
	d := middleware.NewDispatcher(kernel(&calls))
	d.Add(middleware.Noop)

	// Act
	_, err := d.Handle(httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"kernel"}, calls)
}

func TestChain(t *testing.T) {
	// Arrange
	var calls []string
	adapter := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	h := middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls = append(calls, "handler") }),
		adapter("first"),
		middleware.NoopAdapter,
		adapter("second"),
	)

	// Act
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Equal(t, []string{"first", "second", "handler"}, calls)
}
