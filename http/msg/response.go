package msg

import (
	"encoding/json"
	"io"
	"net/http"
)

// A Response is the outcome of handling an HTTP request.
//
// Handlers write into Body; the With methods return modified copies,
// leaving the receiver untouched.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       *Stream
}

// NewResponse constructs a Response with code and an empty body.
func NewResponse(code int) *Response {
	return &Response{
		StatusCode: code,
		Header:     make(http.Header),
		Body:       NewStream(nil),
	}
}

// JSON encodes v into the body and sets the Content-Type header.
func (r *Response) JSON(v any) error {
	r.Header.Set("Content-Type", "application/json")
	return json.NewEncoder(r.Body).Encode(v)
}

// Write appends p to the body.
func (r *Response) Write(p []byte) (int, error) { return r.Body.Write(p) }

// WriteString appends s to the body.
func (r *Response) WriteString(s string) (int, error) { return r.Body.WriteString(s) }

// WithBody returns a copy of r whose body is body.
func (r *Response) WithBody(body *Stream) *Response {
	cp := r.clone()
	cp.Body = body
	return cp
}

// WithHeader returns a copy of r with the header key set to vals.
func (r *Response) WithHeader(key string, vals ...string) *Response {
	cp := r.clone()
	cp.Header.Del(key)
	for _, v := range vals {
		cp.Header.Add(key, v)
	}

	return cp
}

// WithStatus returns a copy of r with code as its status.
func (r *Response) WithStatus(code int) *Response {
	cp := r.clone()
	cp.StatusCode = code
	return cp
}

// Emit writes the headers, status, and body of r onto w.
func (r *Response) Emit(w http.ResponseWriter) error {
	for k, vals := range r.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)

	if r.Body == nil || r.Body.Len() == 0 {
		return nil
	}

	r.Body.Rewind()
	_, err := io.Copy(w, r.Body)
	return err
}

// clone copies r, sharing the body but not the header.
func (r *Response) clone() *Response {
	cp := *r
	if r.Header != nil {
		cp.Header = r.Header.Clone()
	} else {
		cp.Header = make(http.Header)
	}

	return &cp
}
