package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// HandlerFunc handles a request and returns an error when it could not write a response
type HandlerFunc func(*Context) error

// MiddlewareFunc wraps a HandlerFunc
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Router is the HTTP router. Global middleware added with Use applies to every
// route, including routes registered before the call.
type Router struct {
	mux        *chi.Mux
	middleware []MiddlewareFunc
}

// New creates a router
func New() *Router {
	r := &Router{mux: chi.NewRouter()}
	r.mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		r.serve(w, req, func(c *Context) error {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "Not found"})
		})
	})
	return r
}

// Use adds global middleware
func (r *Router) Use(middleware ...MiddlewareFunc) {
	r.middleware = append(r.middleware, middleware...)
}

// UseHTTP adds net/http middleware. It must be called before any route is registered.
func (r *Router) UseHTTP(middleware ...func(http.Handler) http.Handler) {
	r.mux.Use(middleware...)
}

// Group creates a route group under prefix
func (r *Router) Group(prefix string) *RouterGroup {
	return &RouterGroup{router: r, prefix: normalizePrefix(prefix)}
}

func (r *Router) GET(path string, handler HandlerFunc) {
	if path == "" {
		path = "/"
	}
	r.mux.Get(path, func(w http.ResponseWriter, req *http.Request) {
		r.serve(w, req, handler)
	})
}

// Handle mounts a plain http.Handler, e.g. the metrics endpoint
func (r *Router) Handle(path string, handler http.Handler) {
	r.mux.Handle(path, handler)
}

// serve builds the chain at request time so global middleware registered late still applies
func (r *Router) serve(w http.ResponseWriter, req *http.Request, handler HandlerFunc) {
	h := chain(respond(handler), r.middleware)

	c := newContext(w, req)
	if err := h(c); err != nil && !c.Writer.Written() {
		_ = c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

// respond writes the 500 for a failed or panicking handler before the
// middleware chain unwinds, so middleware observes the final status.
func respond(handler HandlerFunc) HandlerFunc {
	return func(c *Context) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v", rec)
			}
			if err != nil && !c.Writer.Written() {
				_ = c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
			}
		}()
		return handler(c)
	}
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Run starts the HTTP server on addr
func (r *Router) Run(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// RouterGroup registers routes under a shared prefix
type RouterGroup struct {
	router *Router
	prefix string
}

// Prefix returns the full path prefix of the group
func (g *RouterGroup) Prefix() string {
	return g.prefix
}

func (g *RouterGroup) GET(path string, handler HandlerFunc) {
	g.router.GET(g.prefix+path, handler)
}

func chain(handler HandlerFunc, middleware []MiddlewareFunc) HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
