package server

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
	"github.com/Brownie44l1/http-server/internal/router"
)

func parse(t *testing.T, raw string) *request.Request {
	t.Helper()
	req, err := request.RequestFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return req
}

func TestLoggingMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	r := router.New()
	r.Use(LoggingMiddleware(NewDefaultLogger(buf, LevelInfo)))
	r.GET("echo", func(req *request.Request, rest string) (*response.Response, error) {
		return response.Text(req.Version, response.StatusOK, rest), nil
	})

	res := r.Route(parse(t, "GET /echo/hello HTTP/1.1\r\n\r\n"))

	assert.Equal(t, "hello", string(res.Body))
	assert.Contains(t, buf.String(), "request handled | method=GET path=/echo/hello status=200 bytes=5")
}

func TestLoggingMiddlewareWarnsOnServerError(t *testing.T) {
	buf := &bytes.Buffer{}
	r := router.New()
	r.Use(LoggingMiddleware(NewDefaultLogger(buf, LevelInfo)))
	r.GET("down", func(req *request.Request, rest string) (*response.Response, error) {
		return response.Empty(req.Version, response.StatusInternalServerError), nil
	})
	r.GET("missing", func(req *request.Request, rest string) (*response.Response, error) {
		return response.Empty(req.Version, response.StatusNotFound), nil
	})

	r.Route(parse(t, "GET /down HTTP/1.1\r\n\r\n"))
	assert.Contains(t, buf.String(), "WARN: request handled | method=GET path=/down status=500")

	buf.Reset()
	r.Route(parse(t, "GET /missing HTTP/1.1\r\n\r\n"))
	assert.Contains(t, buf.String(), "INFO: request handled | method=GET path=/missing status=404")
}

func TestLoggingMiddlewareLogsErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	r := router.New()
	r.Use(LoggingMiddleware(NewDefaultLogger(buf, LevelInfo)))
	r.POST("files", func(req *request.Request, rest string) (*response.Response, error) {
		return nil, errors.New("permission denied")
	})

	res := r.Route(parse(t, "POST /files/x HTTP/1.1\r\n\r\n"))

	assert.Equal(t, response.StatusInternalServerError, res.Status)
	assert.Contains(t, buf.String(), "ERROR: handler failed")
	assert.Contains(t, buf.String(), "error=permission denied")
}

func TestRecoveryMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	r := router.New()
	r.Use(RecoveryMiddleware(NewDefaultLogger(buf, LevelInfo)))
	r.GET("boom", func(req *request.Request, rest string) (*response.Response, error) {
		panic("kaboom")
	})

	res := r.Route(parse(t, "GET /boom HTTP/1.1\r\n\r\n"))

	assert.Equal(t, response.StatusInternalServerError, res.Status)
	assert.Equal(t, "HTTP/1.1", res.Version)
	assert.Contains(t, buf.String(), "panic recovered | error=kaboom")
}
