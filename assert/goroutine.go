// Package assert holds small runtime checks for invariants that are cheap
// to verify but expensive to debug if they're ever silently violated.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GoroutineID returns an identifier for the calling goroutine: different
// between goroutines, consistent for a given one across calls. Meant for
// catching a single-producer/single-consumer invariant violation, not for
// anything a running system should branch on.
func GoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}
