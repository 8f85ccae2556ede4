package session

import (
	"fmt"
	"sync"

	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/rs/zerolog/log"
)

// Store is the process-wide session state. It is populated on login, read by
// every outgoing request and cleared on logout or when the server rejects the
// credential. Safe for concurrent use.
type Store struct {
	repo Repo
	lock sync.RWMutex
	cred Credential
}

// New creates a Store, loading any credential already persisted in repo.
func New(repo Repo) (*Store, error) {
	cred, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("[session New] failed to load session: %w", err)
	}
	return &Store{repo: repo, cred: cred}, nil
}

// Save overwrites the current credential with token and role. Any stored
// username is dropped.
func (s *Store) Save(token string, role users.RoleType) error {
	return s.SaveCredential(Credential{Token: token, Role: role})
}

// SaveCredential overwrites the current credential. The in-memory state is
// always updated; the returned error reports a failed write to the repo.
func (s *Store) SaveCredential(cred Credential) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.cred = cred
	if err := s.repo.Store(cred); err != nil {
		return fmt.Errorf("[session Save] %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred.Token
}

func (s *Store) Role() users.RoleType {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred.Role
}

func (s *Store) Username() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred.Username
}

func (s *Store) Credential() Credential {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred
}

// Clear removes every session key. Calling it on an empty store is a no-op.
func (s *Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	wasSet := !s.cred.IsZero()
	s.cred = Credential{}
	if err := s.repo.Delete(); err != nil {
		return fmt.Errorf("[session Clear] %w", err)
	}
	if wasSet {
		log.Debug().Msg("session cleared")
	}
	return nil
}

// IsAuthenticated reports whether a token is present. It does not validate
// the token; a rejected token reads as authenticated until the next 401.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
