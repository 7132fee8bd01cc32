package store

import (
	"sync/atomic"
	"time"
)

// IDSource hands out task ids.
type IDSource interface {
	Next() int64
}

// Clock derives ids from the wall clock in milliseconds, bumping past the
// previous id when two calls land in the same millisecond.
type Clock struct {
	Now  func() time.Time
	last atomic.Int64
}

// NewClock returns a Clock reading time.Now.
func NewClock() *Clock { return &Clock{Now: time.Now} }

func (c *Clock) Next() int64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	for {
		prev := c.last.Load()
		next := now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if c.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

// Sequence counts up from Start+1. Handy where deterministic ids matter.
type Sequence struct {
	Start int64
	n     int64
}

func (s *Sequence) Next() int64 {
	s.n++
	return s.Start + s.n
}
