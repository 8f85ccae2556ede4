package auth

import "github.com/jrsteele09/go-hrms-client/users"

// Credentials is the POST /login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the POST /login result. Username may be absent, in which
// case it is taken from the request or the token claims.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
}

// RegisterResponse carries the backend's confirmation, which may be a JSON
// object or plain text.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
}

// Profile is the GET /profile payload.
type Profile struct {
	Username  string         `json:"username" yaml:"username"`
	Email     string         `json:"email,omitempty" yaml:"email,omitempty"`
	Role      users.RoleType `json:"role,omitempty" yaml:"role,omitempty"`
	FirstName string         `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty" yaml:"lastName,omitempty"`
}
