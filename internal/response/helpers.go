package response

import (
	"strconv"

	"github.com/Brownie44l1/http-server/internal/headers"
)

// wireHeaders returns the two headers every response carries, in wire order.
func (r *Response) wireHeaders() *headers.Headers {
	h := headers.NewHeaders()
	h.Set("Content-Type", r.ContentType)
	h.Set("Content-Length", strconv.Itoa(r.ContentLength()))
	return h
}

// Empty builds a response with no body and no content type.
func Empty(version string, status Status) *Response {
	return &Response{
		Version: version,
		Status:  status,
		Body:    []byte{},
	}
}

// Text builds a text/plain response.
func Text(version string, status Status, body string) *Response {
	return &Response{
		Version:     version,
		Status:      status,
		ContentType: ContentTypeText,
		Body:        []byte(body),
	}
}

// Octets builds an application/octet-stream response.
func Octets(version string, status Status, body []byte) *Response {
	return &Response{
		Version:     version,
		Status:      status,
		ContentType: ContentTypeOctet,
		Body:        body,
	}
}

// BadRequest is the fixed answer to a request that could not be parsed.
func BadRequest() *Response {
	return Empty(DefaultVersion, StatusBadRequest)
}
