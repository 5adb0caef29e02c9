/*
Package resolver turns the loose handler values routes are registered with into something callable.

A route may name its handler in several ways:

	rt.Get("/", home)                          // a function or handler value
	rt.Get("/users", "users")                  // a name registered on a Registry
	rt.Get("/users/{id}", "users:Show")        // a method on a registered instance
	rt.Get("/health", []any{checks, "Report"}) // a method on an instance at hand

Parse sorts each of these into a Descriptor; a Resolver turns a Descriptor into a callable.
*/
package resolver
