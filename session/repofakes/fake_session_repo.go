package fakesessionrepo

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-hrms-client/session"
)

var _ session.Repo = (*FakeSessionRepo)(nil)

// ErrInjected is returned by a FakeSessionRepo configured to fail writes.
var ErrInjected = errors.New("injected repo failure")

type FakeSessionRepo struct {
	cred      session.Credential
	stores    int
	deletes   int
	failWrite bool
	lock      sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

// NewFakeSessionRepoWith returns a repo pre-populated with cred.
func NewFakeSessionRepoWith(cred session.Credential) *FakeSessionRepo {
	return &FakeSessionRepo{cred: cred}
}

func (sr *FakeSessionRepo) Load() (session.Credential, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.cred, nil
}

func (sr *FakeSessionRepo) Store(cred session.Credential) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.stores++
	if sr.failWrite {
		return ErrInjected
	}
	sr.cred = cred
	return nil
}

func (sr *FakeSessionRepo) Delete() error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.deletes++
	if sr.failWrite {
		return ErrInjected
	}
	sr.cred = session.Credential{}
	return nil
}

// FailWrites makes subsequent Store and Delete calls return ErrInjected.
func (sr *FakeSessionRepo) FailWrites(fail bool) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.failWrite = fail
}

func (sr *FakeSessionRepo) Stores() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.stores
}

func (sr *FakeSessionRepo) Deletes() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.deletes
}
