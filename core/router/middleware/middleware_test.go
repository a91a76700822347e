package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"autocomplete/core/config"
	"autocomplete/core/router"

	"github.com/stretchr/testify/assert"
)

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	r := router.New()
	ApplyConfigurableMiddleware(r, &config.MiddlewareConfig{})
	r.GET("/panic", func(c *router.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "kaboom")
}

func TestRequestIDIsAssigned(t *testing.T) {
	r := router.New()
	ApplyConfigurableMiddleware(r, &config.MiddlewareConfig{})
	r.GET("/id", func(c *router.Context) error { return c.String(http.StatusOK, RequestID(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/id", nil))

	assert.NotEmpty(t, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := router.New()
	ApplyConfigurableMiddleware(r, &config.MiddlewareConfig{CORSEnabled: true, CORSAllowedOrigins: []string{"https://app.test"}})
	r.GET("/api/autocomplete_post_title", func(c *router.Context) error { return c.String(http.StatusOK, "") })

	req := httptest.NewRequest(http.MethodOptions, "/api/autocomplete_post_title", nil)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
