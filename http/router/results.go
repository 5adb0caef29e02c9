package router

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback"
)

// A RoutingStatus is the outcome of matching a request against the route table.
type RoutingStatus int

const (
	NotFound RoutingStatus = iota
	Found
	MethodNotAllowed
)

func (s RoutingStatus) String() string {
	switch s {
	case NotFound:
		return "NOT_FOUND"
	case Found:
		return "FOUND"
	case MethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "UNKNOWN"
	}
}

// Valid errors when s is not one of the statuses a PathMatcher may report.
func (s RoutingStatus) Valid() error {
	switch s {
	case NotFound, Found, MethodNotAllowed:
		return nil
	default:
		return fmt.Errorf("%w: routing status %d", switchback.ErrNotValid, int(s))
	}
}

var _ switchback.Enumerable = RoutingStatus(0)

// A Match is what a PathMatcher reports for a method and path.
type Match struct {
	Status     RoutingStatus
	Identifier string
	Arguments  Arguments
}

// RoutingResults records how a request was matched.
// RoutingResults are immutable.
type RoutingResults struct {
	method     string
	uri        string
	status     RoutingStatus
	identifier string
	args       Arguments
}

// NewRoutingResults constructs the *RoutingResults of matching method and uri.
func NewRoutingResults(method, uri string, m Match) *RoutingResults {
	return &RoutingResults{
		method:     method,
		uri:        uri,
		status:     m.Status,
		identifier: m.Identifier,
		args:       append(Arguments(nil), m.Arguments...),
	}
}

// ResultsFromRequest retrieves the *RoutingResults a router stored on r.
func ResultsFromRequest(r *http.Request) (*RoutingResults, bool) {
	res, ok := switchback.Attribute(r, switchback.RoutingResultsKey).(*RoutingResults)
	return res, ok
}

func (rr *RoutingResults) Method() string          { return rr.method }
func (rr *RoutingResults) URI() string             { return rr.uri }
func (rr *RoutingResults) Status() RoutingStatus   { return rr.status }
func (rr *RoutingResults) RouteIdentifier() string { return rr.identifier }

// Arguments lists the arguments captured from the path.
// When decode is true, values are percent-decoded;
// values that fail to decode are kept as captured.
func (rr *RoutingResults) Arguments(decode bool) Arguments {
	out := make(Arguments, len(rr.args))
	copy(out, rr.args)
	if !decode {
		return out
	}

	for i := range out {
		if val, err := url.PathUnescape(out[i].Value); err == nil {
			out[i].Value = val
		}
	}

	return out
}
