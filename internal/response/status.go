package response

// Status is the closed set of outcomes a response can carry.
type Status int

const (
	StatusOK Status = iota
	StatusCreated
	StatusNotFound
	StatusMethodNotAllowed
	// StatusBadRequest answers unparsable requests. Its status line is
	// "500 Bad" for compatibility with existing clients.
	StatusBadRequest
	StatusInternalServerError
)

// statusLine maps each status to the text written after the version
var statusLine = map[Status]string{
	StatusOK:                  "200 OK",
	StatusCreated:             "201 Created",
	StatusNotFound:            "404 Not Found",
	StatusMethodNotAllowed:    "405 Method Not Allowed",
	StatusBadRequest:          "500 Bad",
	StatusInternalServerError: "500 Internal Server Error",
}

var statusCode = map[Status]int{
	StatusOK:                  200,
	StatusCreated:             201,
	StatusNotFound:            404,
	StatusMethodNotAllowed:    405,
	StatusBadRequest:          500,
	StatusInternalServerError: 500,
}

// Line returns the status line text, e.g. "404 Not Found".
func (s Status) Line() string {
	if line, ok := statusLine[s]; ok {
		return line
	}
	return "500 Unknown Status"
}

// Code returns the numeric status code.
func (s Status) Code() int {
	if code, ok := statusCode[s]; ok {
		return code
	}
	return 500
}

func (s Status) String() string {
	return s.Line()
}

// IsServerError returns true for 5xx status codes
func (s Status) IsServerError() bool {
	return s.Code() >= 500 && s.Code() < 600
}
