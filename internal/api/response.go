package api

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
)

// fallbackBody is the exact payload a synthesized descriptor resolves to when
// the backend is unreachable.
const fallbackBody = `{"error":"Backend not available","fallback":true}`

// Response is the uniform descriptor every client call resolves to. The body
// readers are lazy: the wire payload is read on first use and memoized, so
// JSON and Text may both be called, in any order. A parse error from JSON is
// the only error a caller ever sees from this layer.
type Response struct {
	OK         bool
	Status     int
	StatusText string

	// AuthRequired signals that the platform answered 401 and the calling
	// layer should route the user to login. The transport performs no
	// navigation itself.
	AuthRequired bool

	body     io.ReadCloser
	fallback bool

	mu      sync.Mutex
	data    []byte
	readErr error
	read    bool
}

func newFallbackResponse() *Response {
	return &Response{
		OK:         false,
		Status:     http.StatusServiceUnavailable,
		StatusText: http.StatusText(http.StatusServiceUnavailable),
		fallback:   true,
		data:       []byte(fallbackBody),
		read:       true,
	}
}

// Fallback reports whether this descriptor was synthesized because the
// backend could not be reached.
func (r *Response) Fallback() bool {
	return r.fallback
}

// JSON decodes the response body into v. Invalid payloads surface here, and
// only here, as an error.
func (r *Response) JSON(v any) error {
	data, err := r.bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Text returns the raw response body as a string.
func (r *Response) Text() (string, error) {
	data, err := r.bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Response) bytes() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.read {
		r.data, r.readErr = io.ReadAll(io.LimitReader(r.body, 4<<20))
		r.body.Close()
		r.read = true
	}
	return r.data, r.readErr
}
