package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"golang.org/x/time/rate"
)

func TestVisitorFetch(t *testing.T) {
	t.Run("Serial", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors(5, 20)

		// Act
		v1 := vs.Fetch("127.0.0.1")
		time.Sleep(1 * time.Millisecond)
		v2 := vs.Fetch("127.0.0.1")

		// Assert
		require.Equal(t, v1.Limiter, v2.Limiter)
		require.True(t, v1.LastSeen.Before(v2.LastSeen))
		require.Equal(t, 1, vs.Len())
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Arrange
		var wg sync.WaitGroup
		vs := middleware.NewVisitors(5, 20)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Act
				vs.Fetch("127.0.0.1")
			}()
		}

		wg.Wait()

		// Assert
		require.Equal(t, 1, vs.Len())
	})
}

func TestRateLimit(t *testing.T) {
	// Arrange
	var handled int
	d := middleware.NewDispatcher(middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		handled++
		return msg.NewResponse(http.StatusOK), nil
	}))
	d.Add(middleware.RateLimit(middleware.NewVisitors(rate.Every(time.Hour), 2)))

	newReq := func(ip string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", ip)
		return r
	}

	// Act + Assert
	for i := 0; i < 2; i++ {
		res, err := d.Handle(newReq("1.1.1.1"))
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, err := d.Handle(newReq("1.1.1.1"))
	require.Nil(t, err)
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)

	res, err = d.Handle(newReq("8.8.8.8"))
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, 3, handled)
}

func TestRateLimitNil(t *testing.T) {
	// Arrange + Act
	actual := middleware.RateLimit(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.Noop), fmt.Sprintf("%p", actual))
}
