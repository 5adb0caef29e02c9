/*
Package middleware defines what a middleware is in switchback and a set of basic middlewares.

A Middleware wraps a Handler: it may act on the request, delegate to the next Handler,
and act on the response or error coming back. A Dispatcher stacks Middlewares around a kernel Handler;
the last one added runs first.

The available middlewares are:
  - InjectIPAddress
  - LogRequest
  - Prometheus
  - RateLimit
  - RenderErrors
  - ReportPanic
  - RequestID
  - Tracing

Adapters wrap plain net/http handlers and are composed with Chain:
  - CORS
  - ForceHTTPS

A typical router-wide stack, added to a router in this order:

	rt.AddMiddleware(middleware.ReportPanic(env))
	rt.AddMiddleware(middleware.RequestID())
	rt.AddMiddleware(middleware.LogRequest(log))
	rt.AddMiddleware(middleware.RateLimit(middleware.NewVisitors(limit, burst)))
	rt.AddMiddleware(rt.RoutingMiddleware())
	rt.AddMiddleware(middleware.Prometheus())
*/
package middleware
