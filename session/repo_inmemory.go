package session

import "sync"

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps the credential for the lifetime of the process only.
type InMemoryRepo struct {
	mu   sync.RWMutex
	cred Credential
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Load() (Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cred, nil
}

func (r *InMemoryRepo) Store(cred Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = cred
	return nil
}

func (r *InMemoryRepo) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = Credential{}
	return nil
}
