package router

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// UUIDs hands out a random UUID per route.
// It is the default identifier source of a Router.
func UUIDs() string { return uuid.NewString() }

// Sequence hands out prefix followed by a counter starting at zero.
func Sequence(prefix string) func() string {
	var n atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(n.Add(1)-1, 10)
	}
}
