package auth

import (
	"github.com/jrsteele09/go-hrms-client/gateway"
	"github.com/rs/zerolog/log"
)

// User-facing notices raised by the controller.
const (
	MessageForbidden   = "You do not have permission to perform this action."
	MessageUnreachable = "Network error: Unable to reach the server. Please try again later."
)

// Navigator moves the user to another entry point (e.g. the login page).
type Navigator interface {
	Navigate(path string)
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(message string)
}

// SessionClearer is the part of the session store the controller mutates.
type SessionClearer interface {
	Clear() error
}

// Controller turns gateway classifications into session policy: a rejected
// credential logs the user out, a permission or connectivity failure raises a
// notice. It never swallows the error; the caller still receives it.
type Controller struct {
	session   SessionClearer
	navigator Navigator
	notifier  Notifier
	loginPath string
}

func NewController(session SessionClearer, navigator Navigator, notifier Notifier, loginPath string) *Controller {
	if loginPath == "" {
		loginPath = "/"
	}
	return &Controller{
		session:   session,
		navigator: navigator,
		notifier:  notifier,
		loginPath: loginPath,
	}
}

func (c *Controller) LoginPath() string {
	return c.loginPath
}

// Handle applies the policy for one classification.
func (c *Controller) Handle(kind gateway.Kind) {
	switch kind {
	case gateway.KindUnauthenticated:
		log.Warn().Msg("unauthorized access - redirecting to login")
		c.Logout()
	case gateway.KindUnauthorized:
		log.Warn().Msg("access forbidden - insufficient permissions")
		c.notify(MessageForbidden)
	case gateway.KindUnreachable:
		log.Warn().Msg("no response received from the server")
		c.notify(MessageUnreachable)
	}
}

// Step adapts Handle to the gateway response pipeline.
func (c *Controller) Step() gateway.ResponseStep {
	return func(res *gateway.Result) {
		c.Handle(res.Kind())
	}
}

// Logout clears the session and navigates to the login entry point.
// Repeated calls are harmless.
func (c *Controller) Logout() {
	if c.session != nil {
		if err := c.session.Clear(); err != nil {
			log.Err(err).Msg("failed to clear session")
		}
	}
	if c.navigator != nil {
		c.navigator.Navigate(c.loginPath)
	}
}

func (c *Controller) notify(message string) {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
}
