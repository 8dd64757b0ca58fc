package headers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedHeader = errors.New("malformed header")
	ErrLineFolding     = errors.New("obsolete line folding not supported")
)

// Headers holds header values keyed by lower-cased name. The name a header
// was first added with is kept, in order, for writing it back out.
type Headers struct {
	headers map[string][]string
	names   []string
	skipped []error
}

func NewHeaders() *Headers {
	return &Headers{
		headers: make(map[string][]string),
	}
}

// Get returns the first value for a header
func (h *Headers) Get(key string) (string, bool) {
	values := h.headers[strings.ToLower(key)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Value returns the first value for a header, or "" when it is absent.
func (h *Headers) Value(key string) string {
	v, _ := h.Get(key)
	return v
}

// GetAll returns all values for a header
func (h *Headers) GetAll(key string) []string {
	return h.headers[strings.ToLower(key)]
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.names)
}

// Set replaces all values for a header
func (h *Headers) Set(key, value string) {
	lower := strings.ToLower(key)
	if _, ok := h.headers[lower]; !ok {
		h.names = append(h.names, key)
	}
	h.headers[lower] = []string{value}
}

// Add appends a value to a header
func (h *Headers) Add(key, value string) {
	lower := strings.ToLower(key)
	if _, ok := h.headers[lower]; !ok {
		h.names = append(h.names, key)
	}
	h.headers[lower] = append(h.headers[lower], value)
}

// Del removes a header
func (h *Headers) Del(key string) {
	lower := strings.ToLower(key)
	if _, ok := h.headers[lower]; !ok {
		return
	}
	delete(h.headers, lower)
	for i, name := range h.names {
		if strings.ToLower(name) == lower {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

// Each calls fn for every value in insertion order, using the name the
// header was first added with.
func (h *Headers) Each(fn func(name, value string)) {
	for _, name := range h.names {
		for _, value := range h.headers[strings.ToLower(name)] {
			fn(name, value)
		}
	}
}

// Skipped returns why each ignored header line was dropped, in order.
func (h *Headers) Skipped() []error {
	return h.skipped
}

// Parse consumes complete header lines from data. It returns the number of
// bytes consumed and whether the terminating empty line was seen. A partial
// trailing line is left unconsumed. Malformed and folded lines are dropped
// and recorded in Skipped; they never fail the request.
func (h *Headers) Parse(data []byte) (int, bool) {
	read := 0
	done := false

	for {
		idx := bytes.Index(data[read:], []byte("\r\n"))
		if idx == -1 {
			// Need more data
			break
		}

		if idx == 0 {
			// Empty line = end of headers
			done = true
			read += 2
			break
		}

		line := data[read : read+idx]
		read += idx + 2

		if line[0] == ' ' || line[0] == '\t' {
			h.skipped = append(h.skipped, ErrLineFolding)
			continue
		}

		name, value, err := parseHeader(line)
		if err != nil {
			h.skipped = append(h.skipped, err)
			continue
		}

		h.Add(name, value)
	}

	return read, done
}

func parseHeader(line []byte) (string, string, error) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return "", "", fmt.Errorf("%w: no colon", ErrMalformedHeader)
	}

	name := line[:colonIdx]
	value := line[colonIdx+1:]

	if len(name) == 0 {
		return "", "", fmt.Errorf("%w: empty name", ErrMalformedHeader)
	}

	if bytes.ContainsAny(name, " \t") {
		return "", "", fmt.Errorf("%w: whitespace in name", ErrMalformedHeader)
	}

	for _, b := range name {
		if !isValidHeaderChar(b) {
			return "", "", fmt.Errorf("%w: invalid character in header name: %c", ErrMalformedHeader, b)
		}
	}

	return string(name), string(bytes.TrimSpace(value)), nil
}

func isValidHeaderChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		b == '!' || b == '#' || b == '$' || b == '%' || b == '&' ||
		b == '\'' || b == '*' || b == '+' || b == '-' || b == '.' ||
		b == '^' || b == '_' || b == '`' || b == '|' || b == '~'
}
