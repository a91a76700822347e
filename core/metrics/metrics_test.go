package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"autocomplete/core/router"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	c := NewCollector("autocomplete-test", "1.0.0")
	r := router.New()
	r.Use(c.Middleware())
	r.GET("/ok", func(ctx *router.Context) error { return ctx.String(http.StatusOK, "ok") })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues(http.MethodGet, "200")))
}

func TestMiddlewareCountsFailuresAs500(t *testing.T) {
	c := NewCollector("autocomplete_fail", "1.0.0")
	r := router.New()
	r.Use(c.Middleware())
	r.GET("/err", func(ctx *router.Context) error { return errors.New("boom") })
	r.GET("/panic", func(ctx *router.Context) error { panic("kaboom") })

	for _, path := range []string{"/err", "/panic"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues(http.MethodGet, "500")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues(http.MethodGet, "200")))
}

func TestAutocompleteCounters(t *testing.T) {
	c := NewCollector("autocomplete_test", "1.0.0")
	c.IncError("autocomplete_post_title", "bad_request")
	c.IncError("autocomplete_post_title", "bad_request")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.autocompleteErrors.WithLabelValues("autocomplete_post_title", "bad_request")))

	var nilCollector *Collector
	nilCollector.ObserveRows("x", 1)
	nilCollector.IncError("x", "y")
}

func TestMetricsEndpoint(t *testing.T) {
	c := NewCollector("autocomplete", "1.0.0")
	r := router.New()
	c.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "autocomplete_service_info")
}
