package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	maxRequestLineSize = 8192
	maxHeaderSize      = 1 << 20
	defaultMaxBodySize = 10 << 20
	maxHeaderLines     = 1000
	readChunkSize      = 4096
)

var (
	ErrRequestLineTooLarge = errors.New("request line too large")
	ErrHeaderTooLarge      = errors.New("headers too large")
	ErrTooManyHeaders      = errors.New("too many header lines")
	ErrInvalidEncoding     = errors.New("request is not valid UTF-8")
	ErrUnexpectedEOF       = errors.New("unexpected EOF")
	crlf                   = []byte("\r\n")
)

// parserState represents the current state of the request parser
type parserState int

const (
	stateRequestLine parserState = iota
	stateHeaders
	stateBody
	stateDone
)

func (s parserState) String() string {
	switch s {
	case stateRequestLine:
		return "request line"
	case stateHeaders:
		return "headers"
	case stateBody:
		return "body"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// parser handles incremental parsing of HTTP requests
type parser struct {
	state       parserState
	buffer      []byte // Accumulates data between reads
	headerBytes int
	headerLines int
	bodyLength  int64
	maxBodySize int64
}

func newParser(maxBodySize int64) *parser {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}

	return &parser{
		state:       stateRequestLine,
		buffer:      make([]byte, 0, readChunkSize),
		maxBodySize: maxBodySize,
	}
}

// parseFromReader reads from reader until one request is complete. It never
// reads past the point where the request is known to be finished, so a
// bodiless request does not wait for the peer to close.
func (p *parser) parseFromReader(reader io.Reader, req *Request, maxHeaderBytes int) error {
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = maxHeaderSize
	}

	readBuf := make([]byte, readChunkSize)

	for p.state != stateDone {
		if len(p.buffer) > 0 {
			consumed, err := p.parse(p.buffer, req, maxHeaderBytes)
			if err != nil {
				return err
			}

			if consumed > 0 {
				p.buffer = p.buffer[consumed:]
				continue
			}
			if p.state == stateDone {
				break
			}
		}

		// Outside the body the buffer only holds an unfinished head line.
		if p.state != stateBody && p.headerBytes+len(p.buffer) >= maxHeaderBytes {
			return ErrHeaderTooLarge
		}

		n, err := reader.Read(readBuf)
		if n > 0 {
			p.buffer = append(p.buffer, readBuf[:n]...)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if n > 0 {
					// Parse what arrived with the EOF before giving up.
					continue
				}
				return fmt.Errorf("%w while reading %s", ErrUnexpectedEOF, p.state)
			}
			return fmt.Errorf("read error: %w", err)
		}
	}

	if !utf8.Valid(req.Body) {
		return ErrInvalidEncoding
	}
	return nil
}

// parse processes buffered data and advances the state machine
// Returns number of bytes consumed
func (p *parser) parse(data []byte, req *Request, maxHeaderBytes int) (int, error) {
	switch p.state {
	case stateRequestLine:
		return p.parseRequestLine(data, req)

	case stateHeaders:
		return p.parseHeaders(data, req, maxHeaderBytes)

	case stateBody:
		return p.parseBody(data, req)

	case stateDone:
		return 0, nil

	default:
		return 0, fmt.Errorf("invalid parser state: %d", p.state)
	}
}

func (p *parser) parseRequestLine(data []byte, req *Request) (int, error) {
	method, path, version, consumed, err := parseRequestLine(data)
	if err != nil {
		return 0, err
	}

	if consumed == 0 {
		if len(data) > maxRequestLineSize {
			return 0, ErrRequestLineTooLarge
		}
		return 0, nil
	}

	if !utf8.Valid(data[:consumed]) {
		return 0, ErrInvalidEncoding
	}

	req.Method = method
	req.Path = path
	req.Version = version

	p.headerBytes += consumed
	p.state = stateHeaders
	return consumed, nil
}

// parseHeaders parses HTTP headers until empty line
func (p *parser) parseHeaders(data []byte, req *Request, maxHeaderBytes int) (int, error) {
	consumed, done := req.Headers.Parse(data)

	if !utf8.Valid(data[:consumed]) {
		return 0, ErrInvalidEncoding
	}

	p.headerBytes += consumed
	if p.headerBytes > maxHeaderBytes {
		return 0, ErrHeaderTooLarge
	}

	lines := bytes.Count(data[:consumed], crlf)
	if done {
		lines-- // the blank line ending the block
	}
	p.headerLines += lines
	if p.headerLines > maxHeaderLines {
		return 0, ErrTooManyHeaders
	}

	if !done {
		return consumed, nil
	}

	length, err := p.declaredBodyLength(req)
	if err != nil {
		return 0, err
	}

	if length > 0 {
		p.bodyLength = length
		req.Body = make([]byte, 0, length)
		p.state = stateBody
		return consumed, nil
	}

	p.state = stateDone
	return consumed, nil
}
