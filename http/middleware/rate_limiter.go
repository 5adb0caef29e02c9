package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/switchback/http/msg"
	"golang.org/x/time/rate"
)

const visitorTTL = 60 * time.Minute

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	limit rate.Limit
	val   map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a Visitors whose newly seen Visitor
// is limited to limit requests every second with bursts of up to burst.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	return &Visitors{burst: burst, limit: limit, val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports the number of Visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit answers 429 Too Many Requests once the Visitor
// for the request's IP address exhausts its limiter.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Middleware {
	if visitors == nil {
		return Noop
	}

	return Func(func(r *http.Request, next Handler) (*msg.Response, error) {
		if !visitors.Fetch(IPAddress(r)).Limiter.Allow() {
			res := msg.NewResponse(http.StatusTooManyRequests)
			res.WriteString(http.StatusText(http.StatusTooManyRequests))
			return res, nil
		}

		visitors.cleanup()
		return next.Handle(r)
	})
}
