// Package idgen produces human-facing codes such as PED-1718000000000.
package idgen

import (
	"fmt"
	"sync"
	"time"
)

// Generator hands out codes derived from the wall clock in milliseconds.
// Codes from one Generator are strictly increasing even when the clock
// stalls or steps backwards.
type Generator struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

func New(prefix string) *Generator {
	return &Generator{prefix: prefix, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("%s-%d", g.prefix, ms)
}
