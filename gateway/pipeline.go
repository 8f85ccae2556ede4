package gateway

import (
	"net/http"
	"time"
)

// TokenSource is the gateway's view of the session: the current bearer token,
// or empty when unauthenticated.
type TokenSource interface {
	Token() string
}

// RequestStep runs before dispatch. It may mutate the request; a returned
// error aborts the call as a malformed request.
type RequestStep func(req *http.Request) error

// ResponseStep runs after every call, successful or not, before the result is
// returned to the caller.
type ResponseStep func(res *Result)

// Result is what response steps inspect.
type Result struct {
	Client   string
	Method   string
	Path     string
	Request  *http.Request // nil when the request could not be built
	Response *Response     // nil when no response was received or on failure
	Err      *Error        // nil on success
	Duration time.Duration
}

// Kind returns the classification of the result.
func (r *Result) Kind() Kind {
	if r.Err == nil {
		return KindNone
	}
	return r.Err.Kind
}

// RequestID returns the X-Request-ID sent with the request, if any.
func (r *Result) RequestID() string {
	if r.Request == nil {
		return ""
	}
	return r.Request.Header.Get(HeaderRequestID)
}

// runRequestSteps applies steps in order, stopping at the first error.
func runRequestSteps(req *http.Request, steps []RequestStep) error {
	for _, step := range steps {
		if err := step(req); err != nil {
			return err
		}
	}
	return nil
}

// runResponseSteps applies every step in order.
func runResponseSteps(res *Result, steps []ResponseStep) {
	for _, step := range steps {
		step(res)
	}
}
