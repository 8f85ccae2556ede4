package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("[gateway Decode] %w", err)
	}
	return nil
}

func (r *Response) String() string {
	return string(r.Body)
}
