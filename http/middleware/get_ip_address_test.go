package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		hm       http.Header
		expected string
	}{
		{"No-Match", make(http.Header), "0.0.0.0"},
		{
			"Only-Private-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "192.168.0.0")
				return h
			}(),
			"0.0.0.0",
		},
		{
			"Only-Public-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-Before-Proxy",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.0.0.1,1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-First-Public",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.255.255.255,8.8.8.8,1.1.1.1,172.16.0.0")
				return h
			}(),
			"1.1.1.1",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.hm))
		})
	}
}

func TestIPAddress(t *testing.T) {
	for _, tc := range []struct {
		name     string
		req      func() *http.Request
		expected string
	}{
		{
			"From-Header",
			func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("X-Forwarded-For", "1.1.1.1")
				return r
			},
			"1.1.1.1",
		},
		{
			"From-Remote-Addr",
			func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.RemoteAddr = "8.8.4.4:1234"
				return r
			},
			"8.8.4.4",
		},
		{
			"Bad-Remote-Addr",
			func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.RemoteAddr = "nonsense"
				return r
			},
			"0.0.0.0",
		},
		{
			"From-Attribute",
			func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				return switchback.WithAttribute(r, switchback.IpAddrKey, "9.9.9.9")
			},
			"9.9.9.9",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.IPAddress(tc.req()))
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-Ip", "1.1.1.1")

	d := middleware.NewDispatcher(middleware.HandlerFunc(func(rx *http.Request) (*msg.Response, error) {
		require.Equal(t, "1.1.1.1", switchback.Attribute(rx, switchback.IpAddrKey))
		return msg.NewResponse(http.StatusOK), nil
	}))
	d.Add(middleware.InjectIPAddress())

	// Act
	_, err := d.Handle(r)

	// Assert
	require.Nil(t, err)
}
