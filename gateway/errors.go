package gateway

import (
	"errors"
	"fmt"
	"net/http"

	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
)

// Kind classifies how a request failed.
type Kind int

const (
	KindNone            Kind = iota // success (2xx)
	KindUnauthenticated             // server responded 401
	KindUnauthorized                // server responded 403
	KindUnreachable                 // no response received
	KindMalformed                   // request could not be constructed
	KindStatus                      // any other non-2xx response
	KindCanceled                    // caller canceled the context
)

var kindNames = map[Kind]string{
	KindNone:            "ok",
	KindUnauthenticated: "unauthenticated",
	KindUnauthorized:    "unauthorized",
	KindUnreachable:     "unreachable",
	KindMalformed:       "malformed",
	KindStatus:          "status",
	KindCanceled:        "canceled",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnauthenticated:
		return hrmserrors.ErrUnauthenticated
	case KindUnauthorized:
		return hrmserrors.ErrUnauthorized
	case KindUnreachable:
		return hrmserrors.ErrUnreachable
	case KindMalformed:
		return hrmserrors.ErrMalformedRequest
	case KindStatus:
		return hrmserrors.ErrUnexpectedStatus
	case KindCanceled:
		return hrmserrors.ErrCanceled
	}
	return nil
}

// kindForStatus maps an HTTP status code to its classification.
func kindForStatus(status int) Kind {
	switch {
	case status >= 200 && status < 300:
		return KindNone
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindUnauthorized
	default:
		return KindStatus
	}
}

// Error is returned for every failed request. The status code and body are
// kept so callers can render page-specific feedback.
type Error struct {
	Kind       Kind
	Client     string // "auth" or "api"
	Method     string
	Path       string
	StatusCode int    // zero when no response was received
	Body       []byte // raw response body, if any
	Err        error  // underlying cause; nil for status failures
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[gateway %s] %s %s: %s", e.Client, e.Method, e.Path, e.Kind.sentinel())
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the classification sentinel and the underlying cause,
// so errors.Is works for either.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// BodyString returns the response body as text, e.g. a backend error message.
func (e *Error) BodyString() string {
	return string(e.Body)
}

// KindOf returns the classification of err, KindNone for nil and
// KindMalformed for errors that did not come from a gateway.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindMalformed
}
