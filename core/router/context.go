package router

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// Context carries the request and the response writer
type Context struct {
	Request *http.Request
	Writer  ResponseWriter
}

func newContext(w http.ResponseWriter, req *http.Request) *Context {
	return &Context{
		Request: req,
		Writer:  newResponseWriter(w),
	}
}

// Context returns the request context
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

// Query returns the first value of a query parameter
func (c *Context) Query(key string) string {
	return c.Request.URL.Query().Get(key)
}

// QueryMap collects bracketed parameters such as options[status]=active into a map
func (c *Context) QueryMap(key string) map[string]string {
	result := make(map[string]string)
	prefix := key + "["
	for name, values := range c.Request.URL.Query() {
		if len(values) == 0 || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") {
			continue
		}
		inner := name[len(prefix) : len(name)-1]
		if inner == "" {
			continue
		}
		result[inner] = values[0]
	}
	return result
}

// JSON writes obj as a JSON response
func (c *Context) JSON(code int, obj any) error {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(code)
	return json.NewEncoder(c.Writer).Encode(obj)
}

// String writes a plain text response
func (c *Context) String(code int, body string) error {
	c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Writer.WriteHeader(code)
	_, err := c.Writer.Write([]byte(body))
	return err
}

// ClientIP returns the client address, honoring X-Forwarded-For and X-Real-IP
func (c *Context) ClientIP() string {
	if forwarded := c.Request.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// ResponseWriter records the status code written
type ResponseWriter interface {
	http.ResponseWriter
	Status() int
	Written() bool
}

type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *responseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.status = code
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Status() int   { return w.status }
func (w *responseWriter) Written() bool { return w.written }
