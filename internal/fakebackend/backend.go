// Package fakebackend is an in-process stand-in for the HRMS authentication
// and business services, used by tests and local demos.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
	"github.com/jrsteele09/go-hrms-client/token"
	"github.com/jrsteele09/go-hrms-client/users"
)

const (
	AuthPrefix = "/api/auth"
	APIPrefix  = "/api"

	DefaultSecret   = "hrms-fakebackend-secret"
	DefaultTokenTTL = time.Hour
	DefaultShiftID  = int64(1)
)

// SwapRequest is a recorded shift swap.
type SwapRequest struct {
	EmployeeID int64
	ShiftID    int64
}

type account struct {
	username     string
	email        string
	passwordHash string
	role         users.RoleType
	employeeID   int64
}

// Backend serves the authentication routes under AuthPrefix and the business
// routes under APIPrefix.
type Backend struct {
	server   *httptest.Server
	signer   *token.HMACSigner
	revoked  *token.RevocationList
	tokenTTL time.Duration

	mu        sync.RWMutex
	accounts  map[string]*account
	employees map[int64]*employees.Employee
	nextID    int64
	swaps     []SwapRequest
	failures  map[string][]int
	hits      map[string]int
}

// New starts a Backend on a loopback port. Close it when done.
func New() *Backend {
	b := &Backend{
		signer:    token.NewHMACSigner(DefaultSecret),
		revoked:   token.NewRevocationList(),
		tokenTTL:  DefaultTokenTTL,
		accounts:  make(map[string]*account),
		employees: make(map[int64]*employees.Employee),
		nextID:    1,
		failures:  make(map[string][]int),
		hits:      make(map[string]int),
	}
	b.server = httptest.NewServer(b.routes())
	return b
}

func (b *Backend) Close() {
	b.server.Close()
}

func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) AuthBaseURL() string {
	return b.server.URL + AuthPrefix
}

func (b *Backend) APIBaseURL() string {
	return b.server.URL + APIPrefix
}

// AddUser creates an account and its employee record.
func (b *Backend) AddUser(username, password, email string, role users.RoleType) (*employees.Employee, error) {
	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[username]; exists {
		return nil, fmt.Errorf("user %q already exists", username)
	}
	emp := &employees.Employee{
		EmployeeID: b.nextID,
		Username:   username,
		Role:       role,
		Email:      email,
		ShiftID:    utils.Ptr(DefaultShiftID),
		JoinedDate: time.Now().UTC().Format(time.DateOnly),
	}
	b.nextID++
	b.employees[emp.EmployeeID] = emp
	b.accounts[username] = &account{
		username:     username,
		email:        email,
		passwordHash: hash,
		role:         role,
		employeeID:   emp.EmployeeID,
	}
	cp := *emp
	return &cp, nil
}

// IssueToken mints a valid token for username without a login round trip.
func (b *Backend) IssueToken(username string) (string, error) {
	b.mu.RLock()
	acc, ok := b.accounts[username]
	b.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown user %q", username)
	}
	return b.issue(acc)
}

func (b *Backend) issue(acc *account) (string, error) {
	now := token.NowTimeFunc()
	return b.signer.Sign(jwtlib.MapClaims{
		token.ClaimID:        uuid.NewString(),
		token.ClaimSubject:   acc.username,
		token.ClaimRole:      string(acc.role),
		token.ClaimIssuedAt:  now.Unix(),
		token.ClaimExpiresAt: now.Add(b.tokenTTL).Unix(),
	})
}

// Revoke makes the backend reject raw from now on. Tokens without a jti
// cannot be revoked.
func (b *Backend) Revoke(raw string) error {
	claims, err := token.ParseClaims(raw)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return fmt.Errorf("token has no %s claim", token.ClaimID)
	}
	b.revoked.Prune()
	b.revoked.Revoke(claims.ID, claims.ExpiresAt)
	return nil
}

// FailNext queues status as the answer to the next request for path (the full
// server path, e.g. "/api/auth/profile").
func (b *Backend) FailNext(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = append(b.failures[path], status)
}

func (b *Backend) takeFailure(path string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	queued := b.failures[path]
	if len(queued) == 0 {
		return 0, false
	}
	b.failures[path] = queued[1:]
	return queued[0], true
}

func (b *Backend) recordHit(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[path]++
}

// Hits returns how many requests reached path.
func (b *Backend) Hits(path string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hits[path]
}

// Employee returns a copy of the stored record for id.
func (b *Backend) Employee(id int64) (employees.Employee, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	emp, ok := b.employees[id]
	if !ok {
		return employees.Employee{}, false
	}
	return *emp, true
}

// PasswordMatches reports whether password is username's current password.
func (b *Backend) PasswordMatches(username, password string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, ok := b.accounts[username]
	return ok && users.CheckPasswordHash(password, acc.passwordHash)
}

// Swaps returns the recorded swap requests in arrival order.
func (b *Backend) Swaps() []SwapRequest {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]SwapRequest(nil), b.swaps...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, description string) {
	writeJSON(w, status, map[string]string{
		"error":             http.StatusText(status),
		"error_description": description,
	})
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

// Endpoints points the gateway at a Backend.
type Endpoints struct {
	Auth    string
	API     string
	Timeout time.Duration
}

func (e Endpoints) GetAuthBaseURL() string           { return e.Auth }
func (e Endpoints) GetAPIBaseURL() string            { return e.API }
func (e Endpoints) GetRequestTimeout() time.Duration { return e.Timeout }

func (b *Backend) Endpoints() Endpoints {
	return Endpoints{Auth: b.AuthBaseURL(), API: b.APIBaseURL()}
}
