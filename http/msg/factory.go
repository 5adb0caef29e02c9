package msg

import "net/http"

// A ResponseFactory builds the empty responses handlers write into.
type ResponseFactory interface {
	CreateResponse(code int) *Response
}

// A Factory builds responses carrying a copy of Header.
type Factory struct {
	Header http.Header
}

// CreateResponse builds a Response with code, defaulting to 200 when code is zero.
func (f Factory) CreateResponse(code int) *Response {
	if code == 0 {
		code = http.StatusOK
	}

	res := NewResponse(code)
	for k, vals := range f.Header {
		res.Header[k] = append([]string(nil), vals...)
	}

	return res
}
