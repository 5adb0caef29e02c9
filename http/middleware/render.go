package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/logger"
)

// RenderErrors turns errors returned further down the chain into responses
// built by f, using ErrorResponse.
//
// Errors mapping onto a 500-class status are logged with ls, if ls is not nil;
// not found and method not allowed errors are routine and are not logged.
func RenderErrors(f msg.ResponseFactory, ls logger.Logger) Middleware {
	return Func(func(r *http.Request, next Handler) (*msg.Response, error) {
		res, err := next.Handle(r)
		if err == nil {
			return res, nil
		}

		res = ErrorResponse(f, err)
		if ls != nil && res.StatusCode >= http.StatusInternalServerError {
			lc := &logger.LogContext{Error: err, Request: r}
			if info, ok := switchback.RouteFromRequest(r); ok {
				lc.Route = info
			}

			ls.Error("unhandled error", lc)
		}

		return res, nil
	})
}

// ErrorResponse builds a plain text response for err.
//
// A *switchback.MethodNotAllowedError adds an Allow header listing the methods permitted.
// The body of 500-class responses never reveals the error itself.
func ErrorResponse(f msg.ResponseFactory, err error) *msg.Response {
	if f == nil {
		f = msg.Factory{}
	}

	code := switchback.StatusCode(err)
	res := f.CreateResponse(code)
	res.Header.Set("Content-Type", "text/plain; charset=utf-8")

	var mna *switchback.MethodNotAllowedError
	if errors.As(err, &mna) && len(mna.Allowed) > 0 {
		res.Header.Set("Allow", strings.Join(mna.Allowed, ", "))
	}

	if code >= http.StatusInternalServerError {
		res.WriteString(http.StatusText(code))
		return res
	}

	res.WriteString(err.Error())
	return res
}
