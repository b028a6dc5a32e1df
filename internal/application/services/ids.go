package services

import (
	"sync"
	"time"
)

// idGenerator issues record identifiers: unix-millisecond creation
// timestamps, bumped forward on collision so ids stay unique and
// monotonic within a process.
type idGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newIDGenerator(now func() time.Time) *idGenerator {
	if now == nil {
		now = time.Now
	}
	return &idGenerator{now: now}
}

func (g *idGenerator) next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
