package switchback

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrBadConfig        = errors.New("bad config")
	ErrInvariant        = errors.New("invariant violated")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrMissingData      = errors.New("missing data")
	ErrNotExist         = errors.New("not exist")
	ErrNotFound         = errors.New("not found")
	ErrNotValid         = errors.New("invalid")
	ErrPanic            = errors.New("recovered panic")
	ErrStaleRoute       = errors.New("stale route")
	ErrUnresolvable     = errors.New("unresolvable handler")
)

// A StatusCoder is an error mapping onto an HTTP status code.
type StatusCoder interface {
	error
	StatusCode() int
}

var (
	_ StatusCoder = (*NotFoundError)(nil)
	_ StatusCoder = (*MethodNotAllowedError)(nil)
)

// A NotFoundError signals no route matches the request's path under any method.
//
// Request is the request as it was when routing failed.
type NotFoundError struct {
	Request *http.Request
}

func (e *NotFoundError) Error() string {
	if e.Request == nil || e.Request.URL == nil {
		return ErrNotFound.Error()
	}

	return fmt.Sprintf("%s: %s %s", ErrNotFound, e.Request.Method, e.Request.URL.Path)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }
func (*NotFoundError) Unwrap() error     { return ErrNotFound }

// A MethodNotAllowedError signals the request's path matches a route
// registered for methods other than the request's.
//
// Allowed lists those methods, suitable for an Allow header.
type MethodNotAllowedError struct {
	Request *http.Request
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	if len(e.Allowed) == 0 {
		return ErrMethodNotAllowed.Error()
	}

	return fmt.Sprintf("%s. Must be one of: %s", ErrMethodNotAllowed, strings.Join(e.Allowed, ", "))
}

func (e *MethodNotAllowedError) StatusCode() int { return http.StatusMethodNotAllowed }
func (*MethodNotAllowedError) Unwrap() error     { return ErrMethodNotAllowed }

// StatusCode maps err onto an HTTP status code.
//
// Errors not implementing [StatusCoder] anywhere in their chain map onto 500.
func StatusCode(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	return http.StatusInternalServerError
}
