/*
Package router matches HTTP requests to registered routes and runs them through layered middleware.

Routes register on a [Router], directly or in groups sharing a pattern prefix:

	rt := router.New(router.WithResolver(registry))
	rt.AddMiddleware(middleware.RequestID())

	rt.Group("/users", func(c *router.Collector) {
		c.Get("", "users:Index").SetName("users.index")
		c.Get("/{id:[0-9]+}", "users:Show").SetName("users.show")
	}).AddMiddleware(requireAuth)

Patterns hold parameters, {name} or {name:regexp}, and may end in optional parts wrapped in brackets,
e.g. /blog[/{slug}]; see [ParsePattern].

Middleware wraps in the order added: Router middleware outermost, then the root Collector's,
then each group's from the outermost group in, then the route's own.

A request is matched on its method, trying GET for HEAD requests, then routes registered for [AnyMethod].
Unmatched requests end in a *switchback.NotFoundError or *switchback.MethodNotAllowedError,
which [middleware.RenderErrors] or [Router.ServeHTTP] turn into responses.

The route table freezes on the first request; registering anything after panics.
*/
package router
