package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// A RouteParser builds URLs for named routes.
type RouteParser struct {
	basePath  string
	collector *Collector
}

// NewRouteParser constructs a *RouteParser finding routes in c
// and prefixing URLs with basePath.
func NewRouteParser(c *Collector, basePath string) *RouteParser {
	return &RouteParser{basePath: basePath, collector: c}
}

// RelativeURLFor builds the path of the route named name, filling parameters from data,
// and appends query when it is not empty.
//
// The form of the pattern filling the most parameters wins;
// optional parts without data are left out.
// Missing data for a required parameter is an error wrapping switchback.ErrMissingData.
func (p *RouteParser) RelativeURLFor(name string, data map[string]string, query url.Values) (string, error) {
	route, err := p.collector.NamedRoute(name, true)
	if err != nil {
		return "", err
	}

	exprs, err := ParsePattern(route.Pattern())
	if err != nil {
		return "", err
	}

	var missing string
	for i := len(exprs) - 1; i >= 0; i-- {
		path, absent := fill(exprs[i], data)
		if absent != "" {
			if missing == "" {
				missing = absent
			}
			continue
		}

		if len(query) > 0 {
			path += "?" + query.Encode()
		}
		return path, nil
	}

	return "", fmt.Errorf("%w for URL segment: %s", switchback.ErrMissingData, missing)
}

// URLFor is RelativeURLFor prefixed with the base path.
func (p *RouteParser) URLFor(name string, data map[string]string, query url.Values) (string, error) {
	path, err := p.RelativeURLFor(name, data, query)
	if err != nil {
		return "", err
	}

	return p.basePath + path, nil
}

// FullURLFor is URLFor prefixed with the scheme and authority of base.
// A nil base adds neither.
func (p *RouteParser) FullURLFor(base *url.URL, name string, data map[string]string, query url.Values) (string, error) {
	path, err := p.URLFor(name, data, query)
	if err != nil {
		return "", err
	}

	if base == nil {
		return path, nil
	}

	var b strings.Builder
	if base.Scheme != "" {
		b.WriteString(base.Scheme + ":")
	}

	if base.Host != "" {
		b.WriteString("//")
		if base.User != nil {
			b.WriteString(base.User.String() + "@")
		}
		b.WriteString(base.Host)
	}

	b.WriteString(path)
	return b.String(), nil
}

// fill substitutes data into expr, reporting the first parameter data lacks.
func fill(expr Expression, data map[string]string) (string, string) {
	var b strings.Builder
	for _, seg := range expr {
		if !seg.IsParam() {
			b.WriteString(seg.Literal)
			continue
		}

		val, ok := data[seg.Param]
		if !ok {
			return "", seg.Param
		}
		b.WriteString(url.PathEscape(val))
	}

	return b.String(), ""
}
