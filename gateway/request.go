package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// Request describes one call before it is bound to a client's base address.
type Request struct {
	Method string
	Path   string      // relative to the client's base address; may be pre-escaped
	Query  url.Values  // optional query parameters
	Body   any         // nil, []byte, string, io.Reader, or a value encoded as JSON
	Header http.Header // optional override headers
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// build resolves r against base and returns the outgoing request.
func (r Request) build(ctx context.Context, base *url.URL) (*http.Request, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context")
	}
	if strings.Contains(r.Path, "://") || strings.ContainsAny(r.Path, "?#") {
		return nil, fmt.Errorf("path %q must be relative to the base address", r.Path)
	}

	// JoinPath cleans "." and "..", which would silently change the endpoint.
	for _, seg := range strings.Split(r.Path, "/") {
		if seg == "." || seg == ".." {
			return nil, fmt.Errorf("path %q contains a dot segment", r.Path)
		}
	}

	target := base.JoinPath(r.Path)
	if len(r.Query) > 0 {
		target.RawQuery = r.Query.Encode()
	}

	body, contentType, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.method(), target.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, values := range r.Header {
		req.Header.Del(k)
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case string:
		return strings.NewReader(b), contentTypeText, nil
	case io.Reader:
		return b, "", nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(data), contentTypeJSON, nil
}
