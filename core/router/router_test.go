package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRoutes(t *testing.T) {
	r := New()
	api := r.Group("api/")
	api.GET("/items", func(c *Context) error {
		return c.String(http.StatusOK, "items "+c.Query("q"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items?q=ab", nil))

	assert.Equal(t, "/api", api.Prefix())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "items ab", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestGlobalMiddlewareAddedAfterRoutes(t *testing.T) {
	r := New()
	var order []string
	r.GET("/ping", func(c *Context) error {
		order = append(order, "handler")
		return c.String(http.StatusOK, "pong")
	})
	for _, name := range []string{"first", "second"} {
		name := name
		r.Use(func(next HandlerFunc) HandlerFunc {
			return func(c *Context) error {
				order = append(order, name)
				return next(c)
			}
		})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

// statusRecorder captures the status middleware sees once the handler returns
func statusRecorder(seen *int) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c *Context) error {
			err := next(c)
			*seen = c.Writer.Status()
			return err
		}
	}
}

func TestHandlerErrorIsWrittenBeforeMiddlewareReturns(t *testing.T) {
	r := New()
	var seen int
	r.Use(statusRecorder(&seen))
	r.GET("/boom", func(c *Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusInternalServerError, seen)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestHandlerPanicReachesMiddlewareAs500(t *testing.T) {
	r := New()
	var seen int
	r.Use(statusRecorder(&seen))
	r.GET("/panic", func(c *Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusInternalServerError, seen)
	assert.Contains(t, rec.Body.String(), "kaboom")
}

func TestNotFound(t *testing.T) {
	r := New()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not found")
}

func TestQueryMap(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?q=jo&options[department_id]=3&options[active]=true&options[]=x&optionsX=1", nil)
	c := newContext(httptest.NewRecorder(), req)

	assert.Equal(t, map[string]string{"department_id": "3", "active": "true"}, c.QueryMap("options"))
	assert.Equal(t, "jo", c.Query("q"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	c := newContext(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.1", c.ClientIP())

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", c.ClientIP())
}

func TestResponseWriterStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	c := newContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, c.Writer.Written())

	require.NoError(t, c.JSON(http.StatusCreated, map[string]string{"ok": "yes"}))
	assert.Equal(t, http.StatusCreated, c.Writer.Status())
	assert.True(t, c.Writer.Written())
}
