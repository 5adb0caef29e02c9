package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
)

// RequestIDHeader carries a request's ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestID adds a uuid to the request under switchback.RequestIDKey
// and echoes it on the response in the X-Request-ID header.
//
// A well-formed uuid already present in the request's X-Request-ID header is reused.
func RequestID() Middleware {
	return Func(func(r *http.Request, next Handler) (*msg.Response, error) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		res, err := next.Handle(switchback.WithAttribute(r, switchback.RequestIDKey, id))
		if res != nil {
			res = res.WithHeader(RequestIDHeader, id)
		}

		return res, err
	})
}
