package response

import (
	"bytes"
	"io"
)

// DefaultVersion is used when no request version is available, such as
// when the request could not be parsed.
const DefaultVersion = "HTTP/1.1"

const (
	ContentTypeText  = "text/plain"
	ContentTypeOctet = "application/octet-stream"
)

// Response is built once from a request and written once.
type Response struct {
	Version     string
	Status      Status
	ContentType string
	Body        []byte
}

// ContentLength is always the byte length of Body.
func (r *Response) ContentLength() int {
	return len(r.Body)
}

// WriteTo serializes the response as
//
//	{version} {status}\r\nContent-Type: {type}\r\nContent-Length: {n}\r\n\r\n{body}
//
// Content-Type is written even when empty.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	rw := NewWriter(cw)

	if err := rw.WriteStatusLine(r.Version, r.Status); err != nil {
		return cw.n, err
	}
	if err := rw.WriteHeaders(r.wireHeaders()); err != nil {
		return cw.n, err
	}
	err := rw.WriteBody(r.Body)
	return cw.n, err
}

// Format returns the wire bytes of the response.
func (r *Response) Format() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_, _ = r.WriteTo(&buf)
	return buf.Bytes()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
