package response

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/http-server/internal/headers"
)

func TestStatusLines(t *testing.T) {
	tests := map[Status]string{
		StatusOK:                  "200 OK",
		StatusCreated:             "201 Created",
		StatusNotFound:            "404 Not Found",
		StatusMethodNotAllowed:    "405 Method Not Allowed",
		StatusBadRequest:          "500 Bad",
		StatusInternalServerError: "500 Internal Server Error",
	}

	for status, line := range tests {
		assert.Equal(t, line, status.Line())
		assert.True(t, strings.HasPrefix(line, strconv.Itoa(status.Code())))
	}

	assert.True(t, StatusBadRequest.IsServerError())
	assert.True(t, StatusInternalServerError.IsServerError())
	assert.False(t, StatusNotFound.IsServerError())
	assert.False(t, StatusCreated.IsServerError())
}

func TestFormatEmpty(t *testing.T) {
	res := Empty("HTTP/1.1", StatusOK)

	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: \r\nContent-Length: 0\r\n\r\n", string(res.Format()))
}

func TestFormatText(t *testing.T) {
	res := Text("HTTP/1.1", StatusOK, "abc")

	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc", string(res.Format()))
}

func TestFormatEchoesVersion(t *testing.T) {
	res := Empty("HTTP/1.0", StatusNotFound)

	assert.True(t, strings.HasPrefix(string(res.Format()), "HTTP/1.0 404 Not Found\r\n"))
}

func TestBadRequest(t *testing.T) {
	assert.Equal(t, "HTTP/1.1 500 Bad\r\nContent-Type: \r\nContent-Length: 0\r\n\r\n", string(BadRequest().Format()))
}

func TestContentLengthCountsBytes(t *testing.T) {
	bodies := []string{"", "a", "héllo", "日本語", strings.Repeat("x", 5000)}

	for _, body := range bodies {
		res := Text("HTTP/1.1", StatusOK, body)
		assert.Equal(t, len([]byte(body)), res.ContentLength())
		assert.Contains(t, string(res.Format()), "Content-Length: "+strconv.Itoa(len(body))+"\r\n")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	tests := []*Response{
		Empty("HTTP/1.1", StatusOK),
		Text("HTTP/1.1", StatusOK, "some/echo/path"),
		Octets("HTTP/1.1", StatusOK, []byte("file contents")),
		Empty("HTTP/1.1", StatusCreated),
		Empty("HTTP/1.1", StatusMethodNotAllowed),
	}

	for _, res := range tests {
		parts := strings.Split(string(res.Format()), "\r\n")
		require.Len(t, parts, 5)

		assert.Equal(t, res.Version+" "+res.Status.Line(), parts[0])
		assert.Equal(t, "Content-Type: "+res.ContentType, parts[1])
		assert.Equal(t, "Content-Length: "+strconv.Itoa(res.ContentLength()), parts[2])
		assert.Equal(t, "", parts[3])
		assert.Equal(t, string(res.Body), parts[4])
	}
}

func TestWriteToReportsBytes(t *testing.T) {
	buf := &bytes.Buffer{}
	res := Text("HTTP/1.1", StatusOK, "hello")

	n, err := res.WriteTo(buf)

	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
}

func TestWriterOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	assert.ErrorIs(t, w.WriteHeaders(headers.NewHeaders()), ErrHeadersFirst)
	assert.ErrorIs(t, w.WriteBody([]byte("x")), ErrBodyBeforeHeads)

	require.NoError(t, w.WriteStatusLine("HTTP/1.1", StatusOK))
	assert.ErrorIs(t, w.WriteStatusLine("HTTP/1.1", StatusOK), ErrStatusWritten)

	h := headers.NewHeaders()
	h.Set("Content-Length", "1")
	require.NoError(t, w.WriteHeaders(h))
	require.NoError(t, w.WriteBody([]byte("x")))

	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 1\r\n\r\nx", buf.String())
}

func TestWriterDefaultsVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	require.NoError(t, w.WriteStatusLine("", StatusNotFound))
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n", buf.String())
}

func TestWriterStopsOnWriteError(t *testing.T) {
	w := NewWriter(failingWriter{})

	err := w.WriteStatusLine("HTTP/1.1", StatusOK)

	require.Error(t, err)
	assert.ErrorIs(t, w.WriteHeaders(headers.NewHeaders()), ErrHeadersFirst)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}
