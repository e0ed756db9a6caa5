// Package flight keeps at most one in-flight request per logical key.
//
// Starting a call under a key cancels the previous call registered under the
// same key, so only the most recently started request's result is ever
// delivered. Superseded calls resolve to the zero value rather than an error;
// call sites treat that as "no result, do nothing".
package flight

import (
	"context"
	"errors"
	"sync"
)

// Group tracks live calls by key. The zero value is ready to use.
type Group struct {
	mu     sync.Mutex
	active map[string]*call
}

type call struct {
	cancel context.CancelFunc
}

// Do runs fn under key, cancelling any in-flight call for the same key first.
// When fn is cancelled (superseded or parent context cancelled) Do returns
// the zero value and a nil error.
func Do[T any](g *Group, ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	callCtx, c := g.begin(ctx, key)
	result, err := fn(callCtx)
	g.finish(key, c)

	if err != nil && errors.Is(err, context.Canceled) {
		var zero T
		return zero, nil
	}
	return result, err
}

// Cancel aborts the in-flight call for key, if any.
func (g *Group) Cancel(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.active[key]; ok {
		c.cancel()
		delete(g.active, key)
	}
}

// Pending reports whether a call is currently registered under key.
func (g *Group) Pending(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[key]
	return ok
}

func (g *Group) begin(ctx context.Context, key string) (context.Context, *call) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active == nil {
		g.active = make(map[string]*call)
	}
	if prev, ok := g.active[key]; ok {
		prev.cancel()
	}

	callCtx, cancel := context.WithCancel(ctx)
	c := &call{cancel: cancel}
	g.active[key] = c
	return callCtx, c
}

// finish removes the registry entry for key only when it still refers to this
// call. A superseded call finishing late must not evict its successor.
func (g *Group) finish(key string, c *call) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.active[key]; ok && current == c {
		delete(g.active, key)
	}
	c.cancel()
}
