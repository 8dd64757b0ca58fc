package server

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
	"github.com/Brownie44l1/http-server/internal/router"
)

// LoggingMiddleware logs every routed request and any handler error.
func LoggingMiddleware(logger Logger) router.Middleware {
	return func(next router.Handler) router.Handler {
		return func(req *request.Request, rest string) (*response.Response, error) {
			start := time.Now()

			res, err := next(req, rest)

			duration := time.Since(start)
			if err != nil {
				logger.Error("handler failed",
					Field{"method", req.Method},
					Field{"path", req.Path},
					Field{"error", err},
					Field{"duration_ms", duration.Milliseconds()},
				)
				return res, err
			}

			status := 0
			log := logger.Info
			if res != nil {
				status = res.Status.Code()
				if res.Status.IsServerError() {
					log = logger.Warn
				}
			}
			log("request handled",
				Field{"method", req.Method},
				Field{"path", req.Path},
				Field{"status", status},
				Field{"bytes", responseLength(res)},
				Field{"duration_ms", duration.Milliseconds()},
			)
			return res, nil
		}
	}
}

// RecoveryMiddleware turns a handler panic into an error so the router
// answers with 500 and the connection goroutine keeps running.
func RecoveryMiddleware(logger Logger) router.Middleware {
	return func(next router.Handler) router.Handler {
		return func(req *request.Request, rest string) (res *response.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						Field{"error", r},
						Field{"stack", string(debug.Stack())},
						Field{"path", req.Path},
					)
					res, err = nil, fmt.Errorf("handler panic: %v", r)
				}
			}()

			return next(req, rest)
		}
	}
}

func responseLength(res *response.Response) int {
	if res == nil {
		return 0
	}
	return res.ContentLength()
}
