package middleware

import (
	"net/http"

	"github.com/xy-planning-network/switchback/http/msg"
)

// A node is one link of a Dispatcher's stack:
// it hands the request to mw along with the next link inward.
type node struct {
	mw   Middleware
	next Handler
}

func (n *node) Handle(r *http.Request) (*msg.Response, error) {
	return n.mw.Process(r, n.next)
}

// A Dispatcher runs a request through a stack of Middleware around a kernel Handler.
//
// The stack is LIFO: the last Middleware added is the first to process a request,
// handing it inward until the kernel answers.
// A Dispatcher must not be modified once it handles requests concurrently.
type Dispatcher struct {
	tip Handler
}

// NewDispatcher constructs a Dispatcher around kernel.
func NewDispatcher(kernel Handler) *Dispatcher {
	d := new(Dispatcher)
	d.Seed(kernel)
	return d
}

// Add pushes mw onto the stack, making it the outermost Middleware.
func (d *Dispatcher) Add(mw Middleware) {
	d.tip = &node{mw: mw, next: d.tip}
}

// Handle runs r through the stack.
// Errors from any Middleware or the kernel return unmodified.
func (d *Dispatcher) Handle(r *http.Request) (*msg.Response, error) {
	return d.tip.Handle(r)
}

// Seed discards the stack, making kernel the sole Handler.
func (d *Dispatcher) Seed(kernel Handler) {
	d.tip = kernel
}
