package gateway

import (
	"fmt"

	"github.com/jrsteele09/go-hrms-client/internal/config"
)

const (
	AuthClientName = "auth"
	APIClientName  = "api"
)

// Gateway holds the two configured clients: Auth for the authentication
// service and API for the business-data service. Both share the same step
// pipeline and session.
type Gateway struct {
	Auth *Client
	API  *Client
}

// New builds both clients from cfg. Base addresses are fixed for the lifetime
// of the Gateway.
func New(cfg config.EndpointConfig, tokens TokenSource, opts ...Option) (*Gateway, error) {
	if cfg.GetRequestTimeout() > 0 {
		opts = append([]Option{WithTimeout(cfg.GetRequestTimeout())}, opts...)
	}

	authClient, err := NewClient(AuthClientName, cfg.GetAuthBaseURL(), tokens, opts...)
	if err != nil {
		return nil, fmt.Errorf("[gateway New] %w", err)
	}
	apiClient, err := NewClient(APIClientName, cfg.GetAPIBaseURL(), tokens, opts...)
	if err != nil {
		return nil, fmt.Errorf("[gateway New] %w", err)
	}
	return &Gateway{Auth: authClient, API: apiClient}, nil
}
