package middleware

import (
	"fmt"
	"net/http"

	"autocomplete/core/config"
	"autocomplete/core/router"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ApplyConfigurableMiddleware installs the middleware stack selected by cfg.
// It must run before routes are registered.
func ApplyConfigurableMiddleware(r *router.Router, cfg *config.MiddlewareConfig) {
	r.UseHTTP(chimw.RequestID, chimw.RealIP)
	if cfg.CORSEnabled {
		r.UseHTTP(CORSMiddleware(cfg.CORSAllowedOrigins))
	}
	r.Use(Recovery())
}

// CORSMiddleware allows the autocomplete widget to be served from another origin
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Api-Key", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// Recovery turns a panic raised by middleware further down the chain into an error
func Recovery() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("panic: %v", rec)
				}
			}()
			return next(c)
		}
	}
}

// RequestID returns the id assigned by the request id middleware
func RequestID(c *router.Context) string {
	return chimw.GetReqID(c.Context())
}
