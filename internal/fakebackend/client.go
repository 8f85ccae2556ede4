package fakebackend

import (
	"sync"

	"github.com/jrsteele09/go-hrms-client/auth"
	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/gateway"
	"github.com/jrsteele09/go-hrms-client/session"
	fakesessionrepo "github.com/jrsteele09/go-hrms-client/session/repofakes"
	"github.com/jrsteele09/go-hrms-client/shifts"
)

const LoginPath = "/"

// Navigations records every Navigate call.
type Navigations struct {
	mu    sync.Mutex
	paths []string
}

func (n *Navigations) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *Navigations) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Notices records every Notify call.
type Notices struct {
	mu       sync.Mutex
	messages []string
}

func (n *Notices) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *Notices) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// Client is a complete client stack wired against a Backend, with an
// in-memory session and recording navigator and notifier.
type Client struct {
	Repo       *fakesessionrepo.FakeSessionRepo
	Store      *session.Store
	Navigator  *Navigations
	Notifier   *Notices
	Controller *auth.Controller
	Gateway    *gateway.Gateway
	Auth       *auth.Service
	Employees  *employees.Service
	Shifts     *shifts.Service
}

// NewClient wires a Client. Extra options are appended after the controller step.
func (b *Backend) NewClient(opts ...gateway.Option) (*Client, error) {
	repo := fakesessionrepo.NewFakeSessionRepo()
	store, err := session.New(repo)
	if err != nil {
		return nil, err
	}

	c := &Client{
		Repo:      repo,
		Store:     store,
		Navigator: &Navigations{},
		Notifier:  &Notices{},
	}
	c.Controller = auth.NewController(store, c.Navigator, c.Notifier, LoginPath)

	opts = append([]gateway.Option{gateway.WithResponseSteps(c.Controller.Step())}, opts...)
	c.Gateway, err = gateway.New(b.Endpoints(), store, opts...)
	if err != nil {
		return nil, err
	}

	c.Auth = auth.NewService(c.Gateway.Auth, store, c.Controller)
	c.Employees = employees.NewService(c.Gateway.API, store)
	c.Shifts = shifts.NewService(c.Gateway.API)
	return c, nil
}

// LoginAs stores a freshly issued credential for username, skipping /login.
func (b *Backend) LoginAs(c *Client, username string) error {
	raw, err := b.IssueToken(username)
	if err != nil {
		return err
	}
	b.mu.RLock()
	role := b.accounts[username].role
	b.mu.RUnlock()
	return c.Store.SaveCredential(session.Credential{Token: raw, Username: username, Role: role})
}
