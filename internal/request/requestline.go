package request

import (
	"bytes"
	"errors"
	"strings"
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrInvalidPath          = errors.New("invalid request path")
)

// parseRequestLine parses: METHOD PATH VERSION\r\n
// Returns: method, path, version, bytesConsumed, error
// A zero byte count with a nil error means the line is not complete yet.
func parseRequestLine(data []byte) (string, string, string, int, error) {
	idx := bytes.Index(data, crlf)
	if idx == -1 {
		return "", "", "", 0, nil
	}

	line := string(data[:idx])
	consumed := idx + len(crlf)

	// Tokens past the version are ignored.
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return "", "", "", 0, ErrMalformedRequestLine
	}

	method, path, version := parts[0], parts[1], parts[2]

	if !isValidPath(path) {
		return "", "", "", 0, ErrInvalidPath
	}

	return method, path, version, consumed, nil
}

// isValidPath accepts origin-form targets only.
func isValidPath(path string) bool {
	return strings.HasPrefix(path, "/")
}
