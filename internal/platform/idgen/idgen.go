// Package idgen produces identifiers for new entities. Identifiers are random
// UUID v4 strings, unique across calls and across process restarts without
// any coordination with durable storage.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Func generates a new identifier. Stores accept a Func so tests can inject
// deterministic sequences.
type Func func() string

// New returns a new random UUID v4 string.
func New() string {
	return uuid.NewString()
}

// Sequence returns a Func that yields prefix-1, prefix-2, ... in order.
// It is intended for tests and fixtures.
func Sequence(prefix string) Func {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
