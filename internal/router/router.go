package router

import (
	"strings"

	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
)

// Handler answers a request. rest is the part of the path after the
// matched segment, with its separating slash removed. A non-nil error is
// turned into a 500 Internal Server Error response by the router.
type Handler func(req *request.Request, rest string) (*response.Response, error)

// Middleware wraps a Handler
type Middleware func(next Handler) Handler

// rootSegment is the key under which the handler for "/" is stored.
const rootSegment = ""

// Router dispatches on method first and then on the first path segment.
type Router struct {
	routes     map[string]map[string]Handler
	middleware []Middleware
}

// New creates a new router
func New() *Router {
	return &Router{
		routes: make(map[string]map[string]Handler),
	}
}

// Handle registers handler for method and segment. An empty segment
// registers the root path "/".
func (r *Router) Handle(method, segment string, handler Handler) {
	bySegment, ok := r.routes[method]
	if !ok {
		bySegment = make(map[string]Handler)
		r.routes[method] = bySegment
	}
	bySegment[segment] = handler
}

// GET is a shortcut for Handle("GET", ...)
func (r *Router) GET(segment string, handler Handler) {
	r.Handle("GET", segment, handler)
}

// POST is a shortcut for Handle("POST", ...)
func (r *Router) POST(segment string, handler Handler) {
	r.Handle("POST", segment, handler)
}

// Root registers the handler for "/" under method.
func (r *Router) Root(method string, handler Handler) {
	r.Handle(method, rootSegment, handler)
}

// Use appends middleware. The first one added is the outermost.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// SplitPath strips the leading slash and splits the remainder once on the
// next slash. Without a further slash, rest is empty.
//
//	"/echo/a/b" -> ("echo", "a/b")
//	"/echo"     -> ("echo", "")
//	"/"         -> ("", "")
func SplitPath(path string) (segment, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, rest, _ = strings.Cut(trimmed, "/")
	return segment, rest
}

// Match finds the handler for method and path. The status is
// StatusMethodNotAllowed when no route uses the method at all and
// StatusNotFound when the method is known but the path is not.
func (r *Router) Match(method, path string) (Handler, string, response.Status) {
	bySegment, ok := r.routes[method]
	if !ok {
		return nil, "", response.StatusMethodNotAllowed
	}

	if strings.TrimPrefix(path, "/") == "" {
		if h, ok := bySegment[rootSegment]; ok {
			return h, "", response.StatusOK
		}
		return nil, "", response.StatusNotFound
	}

	segment, rest := SplitPath(path)
	if segment == rootSegment {
		// "//x" names no route.
		return nil, "", response.StatusNotFound
	}

	h, ok := bySegment[segment]
	if !ok {
		return nil, "", response.StatusNotFound
	}
	return h, rest, response.StatusOK
}

// Route produces the response for req. It never returns nil.
func (r *Router) Route(req *request.Request) *response.Response {
	handler, rest, status := r.Match(req.Method, req.Path)
	if handler == nil {
		handler = statusHandler(status)
	}

	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}

	res, err := handler(req, rest)
	if err != nil || res == nil {
		return response.Empty(req.Version, response.StatusInternalServerError)
	}
	return res
}

func statusHandler(status response.Status) Handler {
	return func(req *request.Request, rest string) (*response.Response, error) {
		return response.Empty(req.Version, status), nil
	}
}
