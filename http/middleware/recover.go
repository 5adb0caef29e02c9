package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
)

const sentryFlushTimeout = 2 * time.Second

// ReportPanic recovers panics raised further down the chain,
// turning them into an error wrapping switchback.ErrPanic.
//
// In environments reporting panics, the panic is also sent to Sentry
// through a hub scoped to the request.
func ReportPanic(env switchback.Environment) Middleware {
	return Func(func(r *http.Request, next Handler) (res *msg.Response, err error) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if env.ReportsPanics() {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(r)
				hub.Recover(rec)
				hub.Flush(sentryFlushTimeout)
			}

			res = nil
			err = fmt.Errorf("%w: %v", switchback.ErrPanic, rec)
		}()

		return next.Handle(r)
	})
}
