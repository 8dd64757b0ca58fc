package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidContentLength = errors.New("invalid content-length")
	ErrBodyTooLarge         = errors.New("body exceeds maximum size")
)

// declaredBodyLength validates the Content-Length header. A missing header
// means no body.
func (p *parser) declaredBodyLength(req *Request) (int64, error) {
	values := req.Headers.GetAll("Content-Length")
	if len(values) == 0 {
		return 0, nil
	}

	// Repeated headers must agree.
	first := strings.TrimSpace(values[0])
	for _, v := range values[1:] {
		if strings.TrimSpace(v) != first {
			return 0, fmt.Errorf("%w: conflicting values %q", ErrInvalidContentLength, values)
		}
	}

	length, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentLength, first)
	}
	if length < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrInvalidContentLength, length)
	}
	if length > p.maxBodySize {
		return 0, ErrBodyTooLarge
	}
	return length, nil
}

// parseBody copies body bytes until the declared Content-Length is reached.
// Anything after that belongs to no request and is left in the buffer.
func (p *parser) parseBody(data []byte, req *Request) (int, error) {
	remaining := int(p.bodyLength) - len(req.Body)
	if remaining <= 0 {
		p.state = stateDone
		return 0, nil
	}

	toRead := min(remaining, len(data))
	req.Body = append(req.Body, data[:toRead]...)

	if int64(len(req.Body)) == p.bodyLength {
		p.state = stateDone
	}

	return toRead, nil
}
