// Package chain composes HTTP middleware whose handlers return errors, so a
// single terminating middleware at the root can decide what to do with them.
package chain

import "net/http"

// Handler is an http.HandlerFunc which may fail
type Handler func(http.ResponseWriter, *http.Request) error

// Middleware wraps a Handler
type Middleware func(Handler) Handler

// TerminatingMiddleware turns a Handler back into a plain http.HandlerFunc. It
// sits at the root of every chain and is the last place an error is seen.
type TerminatingMiddleware func(Handler) http.HandlerFunc

type Chain struct {
	terminator  TerminatingMiddleware
	middlewares []Middleware
}

func New(terminator TerminatingMiddleware) Chain {
	return Chain{terminator: terminator}
}

// Add returns a new chain with m appended. The receiver is left untouched, so
// a base chain can be shared between routes.
func (c Chain) Add(m Middleware) Chain {
	middlewares := make([]Middleware, len(c.middlewares), len(c.middlewares)+1)
	copy(middlewares, c.middlewares)
	return Chain{terminator: c.terminator, middlewares: append(middlewares, m)}
}

// ToMiddleware collapses the chain into a TerminatingMiddleware. Middlewares
// run in the order they were added.
func (c Chain) ToMiddleware() TerminatingMiddleware {
	return func(h Handler) http.HandlerFunc {
		for i := len(c.middlewares) - 1; i >= 0; i-- {
			h = c.middlewares[i](h)
		}
		return c.terminator(h)
	}
}

// Resolve terminates the chain with h
func (c Chain) Resolve(h Handler) http.HandlerFunc {
	return c.ToMiddleware()(h)
}
