package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/xy-planning-network/switchback"
)

var (
	_ encoding.TextMarshaler = LogContext{}
)

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// Route is the route the Request matched, if any.
	Route switchback.RouteInfo
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// Values in LogContext.Data that cannot be represented in JSON will cause an error to be thrown.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		r := map[string]any{"method": lc.Request.Method}
		if lc.Request.URL != nil {
			r["url"] = lc.Request.URL.String()
		}

		if id, ok := switchback.Attribute(lc.Request, switchback.RequestIDKey).(string); ok {
			r["id"] = id
		}

		m["request"] = r
	}

	if lc.Route != nil {
		rt := map[string]any{
			"id":      lc.Route.Identifier(),
			"pattern": lc.Route.Pattern(),
		}
		if name := lc.Route.Name(); name != "" {
			rt["name"] = name
		}

		m["route"] = rt
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	return string(b)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() {		<- returns this caller
//		func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return callSite(file, line)
}
