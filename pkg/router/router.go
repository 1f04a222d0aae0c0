package router

import (
	"context"
	"net/http"

	"golang.org/x/exp/slices"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. It can derive a new
// context for the rest of the chain. A returned error stops the chain and
// is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, even if a middleware or
// the handler failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux
	ctx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a Router whose handlers derive their context from ctx. The
// context should carry the database, configs, logger, token engine, and
// session store.
func New(ctx context.Context) *Router {
	r := &Router{ctx: ctx, mux: http.NewServeMux()}
	r.AddCloser(handleResponse())
	return r
}

// Branch returns a new Router sharing the same mux. Middlewares and
// closers registered on the branch do not affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		ctx:     r.ctx,
		befores: slices.Clone(r.befores),
		afters:  slices.Clone(r.afters),
		closers: slices.Clone(r.closers),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}
