package response

import (
	"errors"
	"fmt"
	"io"

	"github.com/Brownie44l1/http-server/internal/headers"
)

var (
	ErrStatusWritten   = errors.New("status line already written")
	ErrHeadersFirst    = errors.New("must write status line before headers")
	ErrBodyBeforeHeads = errors.New("must write headers before body")
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one HTTP response to an io.Writer, enforcing the order
// status line, headers, body.
type Writer struct {
	w     io.Writer
	state writerState
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes "{version} {status}\r\n". The version is echoed
// as given.
func (w *Writer) WriteStatusLine(version string, status Status) error {
	if w.state != stateStart {
		return ErrStatusWritten
	}

	if version == "" {
		version = DefaultVersion
	}

	if _, err := fmt.Fprintf(w.w, "%s %s\r\n", version, status.Line()); err != nil {
		return err
	}

	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes all HTTP headers followed by the blank line
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return ErrHeadersFirst
	}

	var err error
	h.Each(func(name, value string) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w.w, "%s: %s\r\n", name, value)
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w.w, "\r\n"); err != nil {
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten {
		return ErrBodyBeforeHeads
	}

	if len(data) == 0 {
		w.state = stateBodyWritten
		return nil
	}

	if _, err := w.w.Write(data); err != nil {
		return err
	}

	w.state = stateBodyWritten
	return nil
}
