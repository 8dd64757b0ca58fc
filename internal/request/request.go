package request

import (
	"io"

	"github.com/Brownie44l1/http-server/internal/headers"
)

// Request is a parsed HTTP/1.1 request. It is only ever produced by a
// successful parse and is not modified afterwards.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers *headers.Headers
	Body    []byte
}

// Limits bounds how much a single request may occupy.
type Limits struct {
	MaxHeaderBytes int
	MaxBodyBytes   int64
}

// DefaultLimits returns the limits used by RequestFromReader.
func DefaultLimits() Limits {
	return Limits{
		MaxHeaderBytes: maxHeaderSize,
		MaxBodyBytes:   defaultMaxBodySize,
	}
}

// RequestFromReader reads and parses exactly one request from reader.
func RequestFromReader(reader io.Reader) (*Request, error) {
	return RequestFromReaderWithLimits(reader, DefaultLimits())
}

// RequestFromReaderWithLimits is RequestFromReader with explicit limits.
// Zero values fall back to the defaults.
func RequestFromReaderWithLimits(reader io.Reader, limits Limits) (*Request, error) {
	req := &Request{
		Headers: headers.NewHeaders(),
	}

	p := newParser(limits.MaxBodyBytes)
	if err := p.parseFromReader(reader, req, limits.MaxHeaderBytes); err != nil {
		return nil, err
	}
	return req, nil
}

// UserAgent returns the User-Agent header value, or "" if it was not sent.
func (r *Request) UserAgent() string {
	return r.Headers.Value("User-Agent")
}

// BodyString returns the request body as a string
func (r *Request) BodyString() string {
	return string(r.Body)
}
