package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/logger"
)

// LogRequest logs the request's method, requested URL, resulting status, and duration
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following query keys:
// - password
//
// Requests ending in a 500-class status log at the error level; others, at info.
// If ls is nil, Noop returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Middleware {
	if ls == nil {
		return Noop
	}

	return Func(func(r *http.Request, next Handler) (*msg.Response, error) {
		start := time.Now()
		res, err := next.Handle(r)

		uri := r.URL.Path
		q := r.URL.Query()
		switchback.Mask(q, "password")
		if query := q.Encode(); query != "" {
			uri += "?" + query
		}

		status := http.StatusOK
		switch {
		case err != nil:
			status = switchback.StatusCode(err)
		case res != nil && res.StatusCode != 0:
			status = res.StatusCode
		}

		data := map[string]any{
			"duration": time.Since(start).String(),
			"ip":       IPAddress(r),
			"status":   status,
		}

		lc := &logger.LogContext{Data: data, Request: r}
		if info, ok := switchback.RouteFromRequest(r); ok {
			lc.Route = info
		}

		line := fmt.Sprintf("%s %s %d", r.Method, uri, status)
		if status >= http.StatusInternalServerError {
			lc.Error = err
			ls.Error(line, lc)
		} else {
			ls.Info(line, lc)
		}

		return res, err
	})
}
