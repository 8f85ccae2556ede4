package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client or Gateway.
type Option func(*options)

type options struct {
	httpClient    *http.Client
	timeout       time.Duration
	requestSteps  []RequestStep
	responseSteps []ResponseStep
	metrics       *Metrics
	logger        *zerolog.Logger
}

// WithHTTPClient replaces the underlying http.Client (its Timeout is kept
// unless WithTimeout is also given).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRequestSteps appends pre-dispatch steps after the built-in ones.
func WithRequestSteps(steps ...RequestStep) Option {
	return func(o *options) { o.requestSteps = append(o.requestSteps, steps...) }
}

// WithResponseSteps appends post-dispatch steps after logging and metrics.
func WithResponseSteps(steps ...ResponseStep) Option {
	return func(o *options) { o.responseSteps = append(o.responseSteps, steps...) }
}

func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Client dispatches requests to one fixed base address. The step lists are
// fixed at construction; a Client is safe for concurrent use.
type Client struct {
	name          string
	baseURL       *url.URL
	httpClient    *http.Client
	requestSteps  []RequestStep
	responseSteps []ResponseStep
}

// NewClient builds a Client named name bound to baseURL. Steps run in this
// order: BearerAuth, RequestID, caller request steps; then LogResult, metrics,
// caller response steps.
func NewClient(name, baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("[gateway NewClient] invalid base URL for %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("[gateway NewClient] base URL for %s must be http or https: %q", name, baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("[gateway NewClient] base URL for %s has no host: %q", name, baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery, u.Fragment = "", ""

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if o.timeout > 0 {
		c := *httpClient
		c.Timeout = o.timeout
		httpClient = &c
	}

	requestSteps := []RequestStep{BearerAuth(tokens), RequestID()}
	requestSteps = append(requestSteps, o.requestSteps...)

	responseSteps := []ResponseStep{LogResult(o.logger)}
	if o.metrics != nil {
		responseSteps = append(responseSteps, o.metrics.Step())
	}
	responseSteps = append(responseSteps, o.responseSteps...)

	return &Client{
		name:          name,
		baseURL:       u,
		httpClient:    httpClient,
		requestSteps:  requestSteps,
		responseSteps: responseSteps,
	}, nil
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do dispatches r and classifies the outcome. On success the response is
// returned; otherwise a *Error is returned after every response step,
// including any session side effects, has run.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	res := &Result{Client: c.name, Method: r.method(), Path: r.Path}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		runResponseSteps(res, c.responseSteps)
	}()

	req, err := r.build(ctx, c.baseURL)
	if err != nil {
		res.Err = c.newError(KindMalformed, r, 0, nil, err)
		return nil, res.Err
	}
	if err := runRequestSteps(req, c.requestSteps); err != nil {
		res.Err = c.newError(KindMalformed, r, 0, nil, err)
		return nil, res.Err
	}
	res.Request = req

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindUnreachable
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			kind = KindCanceled
		}
		res.Err = c.newError(kind, r, 0, nil, err)
		return nil, res.Err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = c.newError(KindUnreachable, r, resp.StatusCode, body, err)
		return nil, res.Err
	}

	if kind := kindForStatus(resp.StatusCode); kind != KindNone {
		res.Err = c.newError(kind, r, resp.StatusCode, body, nil)
		return nil, res.Err
	}

	res.Response = &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	return res.Response, nil
}

func (c *Client) newError(kind Kind, r Request, status int, body []byte, cause error) *Error {
	return &Error{
		Kind:       kind,
		Client:     c.name,
		Method:     r.method(),
		Path:       r.Path,
		StatusCode: status,
		Body:       body,
		Err:        cause,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Query: query, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}
