package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const HeaderRequestID = "X-Request-ID"

// BearerAuth attaches the current session token as a bearer credential.
// With no token the request goes out without an Authorization header set by
// this step. It never fails.
func BearerAuth(tokens TokenSource) RequestStep {
	return func(req *http.Request) error {
		if tokens == nil {
			return nil
		}
		accessToken := tokens.Token()
		if accessToken == "" {
			return nil
		}
		tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
		tok.SetAuthHeader(req)
		return nil
	}
}

// RequestID tags the request with a fresh X-Request-ID unless the caller set one.
func RequestID() RequestStep {
	return func(req *http.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.Header.Set(HeaderRequestID, uuid.New().String())
		}
		return nil
	}
}

// LogResult logs every completed call. Failures log at warn, except caller
// cancellation which logs at debug.
func LogResult(logger *zerolog.Logger) ResponseStep {
	return func(res *Result) {
		l := logger
		if l == nil {
			l = &log.Logger
		}

		var evt *zerolog.Event
		switch res.Kind() {
		case KindNone, KindCanceled:
			evt = l.Debug()
		default:
			evt = l.Warn()
		}

		evt = evt.Str("client", res.Client).
			Str("method", res.Method).
			Str("path", res.Path).
			Str("outcome", res.Kind().String()).
			Dur("duration", res.Duration)
		if id := res.RequestID(); id != "" {
			evt = evt.Str("request_id", id)
		}
		if res.Err != nil {
			if res.Err.StatusCode != 0 {
				evt = evt.Int("status", res.Err.StatusCode)
			}
			if res.Err.Err != nil {
				evt = evt.AnErr("cause", res.Err.Err)
			}
			evt.Msg("request failed")
			return
		}
		if res.Response != nil {
			evt = evt.Int("status", res.Response.StatusCode)
		}
		evt.Msg("request completed")
	}
}
