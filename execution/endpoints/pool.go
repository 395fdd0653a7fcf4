// Package endpoints implements the ordered, fallback-capable pool of
// execution-node endpoints described in spec.md §4.1. A Pool sticks to the
// highest-preference live endpoint and only walks down the list on
// consecutive failures within a single logical request.
package endpoints

import (
	"sync"

	"github.com/sentineld/beacon-execd/network/authorization"
)

// Pool holds an immutable preference-ordered endpoint list plus a mutable
// cursor over the live suffix. All four operations are serialized behind a
// single mutex; none is held across network I/O (spec.md §5).
type Pool struct {
	mu        sync.Mutex
	original  []authorization.Endpoint
	remaining []authorization.Endpoint
}

// New builds a Pool from an ordered list of raw endpoint specifications,
// each parsed with authorization.HTTPEndpoint so a per-endpoint static
// auth suffix ("url,Basic user:pass" / "url,Bearer token") travels with
// its endpoint through the rest of the fallback machinery. An empty list
// is accepted: the error is deferred to the first call attempt (spec.md
// §4.2 "Edge-case policies").
func New(raw []string) *Pool {
	parsed := make([]authorization.Endpoint, len(raw))
	for i, r := range raw {
		parsed[i] = authorization.HTTPEndpoint(r)
	}
	return &Pool{
		original:  parsed,
		remaining: append([]authorization.Endpoint(nil), parsed...),
	}
}

// Original returns the immutable endpoint list the pool was built with.
func (p *Pool) Original() []authorization.Endpoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]authorization.Endpoint, len(p.original))
	copy(out, p.original)
	return out
}

// Current returns the first endpoint of the remaining suffix without
// advancing, or (Endpoint{}, false) if the pool is exhausted.
func (p *Pool) Current() (authorization.Endpoint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.remaining) == 0 {
		return authorization.Endpoint{}, false
	}
	return p.remaining[0], true
}

// Advance discards the first endpoint of the remaining suffix.
func (p *Pool) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.remaining) > 0 {
		p.remaining = p.remaining[1:]
	}
}

// PeekNext returns the second endpoint of the remaining suffix (the one
// Advance would make current), or (Endpoint{}, false) if there is none.
func (p *Pool) PeekNext() (authorization.Endpoint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.remaining) < 2 {
		return authorization.Endpoint{}, false
	}
	return p.remaining[1], true
}

// Reset reinitializes the remaining suffix to the full original sequence.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remaining = append([]authorization.Endpoint(nil), p.original...)
}
