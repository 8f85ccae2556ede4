package session

import "github.com/jrsteele09/go-hrms-client/users"

// Credential is the single persisted authentication state.
// A zero Token means the user is unauthenticated; expiry is enforced by the
// server only.
type Credential struct {
	Token    string         `json:"token,omitempty"`    // Opaque bearer token
	Username string         `json:"username,omitempty"` // Login name, used to look up the employee record
	Role     users.RoleType `json:"role,omitempty"`     // ROLE_MANAGER or ROLE_EMPLOYEE
}

func (c Credential) IsZero() bool {
	return c == Credential{}
}

// Repo defines the interface for credential persistence.
// Implementations hold at most one credential.
type Repo interface {
	// Load returns the stored credential, or a zero Credential when nothing is stored
	Load() (Credential, error)

	// Store overwrites any stored credential
	Store(cred Credential) error

	// Delete removes the stored credential; deleting nothing is not an error
	Delete() error
}
