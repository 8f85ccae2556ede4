package token

import (
	"sync"
	"time"
)

// RevocationList remembers token ids (jti) that must be refused until they
// would have expired anyway.
type RevocationList struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time)}
}

// Revoke refuses id until exp. Entries with a zero exp are never pruned.
func (l *RevocationList) Revoke(id string, exp time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[id] = exp
}

func (l *RevocationList) IsRevoked(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.revoked[id]
	return ok
}

// Prune drops entries whose expiry has passed and returns how many went.
func (l *RevocationList) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := NowTimeFunc()
	n := 0
	for id, exp := range l.revoked {
		if !exp.IsZero() && now.After(exp) {
			delete(l.revoked, id)
			n++
		}
	}
	return n
}
