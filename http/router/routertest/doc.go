// Package routertest provides gomock mocks of the collaborators a router.Router depends on.
package routertest

//go:generate mockgen -destination=matcher.go -package=routertest github.com/xy-planning-network/switchback/http/router PathMatcher
//go:generate mockgen -destination=resolver.go -package=routertest github.com/xy-planning-network/switchback/http/resolver Resolver
