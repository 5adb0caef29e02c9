package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/http/router"
)

func TestRequestStrategy(t *testing.T) {
	args := router.Arguments{{"id", "42"}}

	for _, tc := range []struct {
		name     string
		strategy router.RequestStrategy
		expected any
	}{
		{"Plain", router.RequestStrategy{}, nil},
		{"Append-Arguments", router.RequestStrategy{AppendArguments: true}, "42"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var seen any
			fn := func(r *http.Request) (*msg.Response, error) {
				seen = switchback.Attribute(r, router.ArgumentAttribute("id"))
				return msg.NewResponse(http.StatusTeapot), nil
			}

			// Act
			res, err := tc.strategy.Invoke(fn, httptest.NewRequest(http.MethodGet, "/", nil), msg.NewResponse(http.StatusOK), args)

			// Assert
			require.NoError(t, err)
			require.Equal(t, http.StatusTeapot, res.StatusCode)
			require.Equal(t, tc.expected, seen)
		})
	}
}

func TestRequestStrategyHandler(t *testing.T) {
	// Arrange
	h := middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		return msg.NewResponse(http.StatusAccepted), nil
	})

	// Act
	res, err := router.RequestStrategy{}.Invoke(h, httptest.NewRequest(http.MethodGet, "/", nil), nil, nil)

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, res.StatusCode)
}

func TestRequestResponseStrategy(t *testing.T) {
	// Arrange
	args := router.Arguments{{"id", "42"}, {"slug", "hello"}}
	given := msg.NewResponse(http.StatusOK)

	var (
		seenArgs map[string]string
		seenAttr any
		seenRes  *msg.Response
	)
	fn := func(r *http.Request, res *msg.Response, args map[string]string) (*msg.Response, error) {
		seenArgs, seenAttr, seenRes = args, switchback.Attribute(r, router.ArgumentAttribute("slug")), res
		return res, nil
	}

	for _, tc := range []struct {
		name     string
		callable any
	}{
		{"Unnamed", fn},
		{"ArgsFunc", router.ArgsFunc(fn)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res, err := router.RequestResponseStrategy{}.Invoke(tc.callable, httptest.NewRequest(http.MethodGet, "/", nil), given, args)

			// Assert
			require.NoError(t, err)
			require.Same(t, given, res)
			require.Same(t, given, seenRes)
			require.Equal(t, map[string]string{"id": "42", "slug": "hello"}, seenArgs)
			require.Equal(t, "hello", seenAttr)
		})
	}
}

func TestRequestResponseArgsStrategy(t *testing.T) {
	// Arrange
	args := router.Arguments{{"year", "2024"}, {"slug", "hello"}}

	var (
		seenVals []string
		seenAttr any
	)
	fn := func(r *http.Request, res *msg.Response, vals ...string) (*msg.Response, error) {
		seenVals, seenAttr = vals, switchback.Attribute(r, router.ArgumentAttribute("year"))
		return res, nil
	}

	for _, tc := range []struct {
		name     string
		callable any
	}{
		{"Unnamed", fn},
		{"VariadicFunc", router.VariadicFunc(fn)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := router.RequestResponseArgsStrategy{}.Invoke(tc.callable, httptest.NewRequest(http.MethodGet, "/", nil), msg.NewResponse(http.StatusOK), args)

			// Assert
			require.NoError(t, err)
			require.Equal(t, []string{"2024", "hello"}, seenVals)
			require.Nil(t, seenAttr)
		})
	}
}

func TestHandlerStrategy(t *testing.T) {
	// Arrange
	h := middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		return msg.NewResponse(http.StatusNoContent), nil
	})

	// Act
	res, err := router.HandlerStrategy{}.Invoke(h, httptest.NewRequest(http.MethodGet, "/", nil), msg.NewResponse(http.StatusOK), router.Arguments{{"id", "1"}})

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestStrategyShapeMismatch(t *testing.T) {
	notAHandler := func() {}

	for _, tc := range []struct {
		name     string
		strategy router.InvocationStrategy
	}{
		{"Request", router.RequestStrategy{}},
		{"Request-Response", router.RequestResponseStrategy{}},
		{"Request-Response-Args", router.RequestResponseArgsStrategy{}},
		{"Handler", router.HandlerStrategy{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res, err := tc.strategy.Invoke(notAHandler, httptest.NewRequest(http.MethodGet, "/", nil), msg.NewResponse(http.StatusOK), nil)

			// Assert
			require.Nil(t, res)
			require.ErrorIs(t, err, switchback.ErrUnresolvable)
		})
	}
}
