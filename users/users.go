package users

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// RoleType is the role the backend assigns to an account at login.
type RoleType string

const (
	RoleManager  RoleType = "ROLE_MANAGER"  // Manages employees, shifts, leave and reports
	RoleEmployee RoleType = "ROLE_EMPLOYEE" // Views own profile, shifts and leave
)

const rolePrefix = "ROLE_"

// ParseRole accepts "manager", "MANAGER" or "ROLE_MANAGER" (likewise for employee).
func ParseRole(s string) (RoleType, error) {
	r := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(r, rolePrefix) {
		r = rolePrefix + r
	}
	switch RoleType(r) {
	case RoleManager, RoleEmployee:
		return RoleType(r), nil
	}
	return "", fmt.Errorf("%w: %q", hrmserrors.ErrInvalidRole, s)
}

func (r RoleType) IsManager() bool {
	return r == RoleManager
}

// DashboardPath returns the landing page for the role; empty for unknown roles.
func (r RoleType) DashboardPath() string {
	switch r {
	case RoleManager:
		return "/manager"
	case RoleEmployee:
		return "/employee"
	}
	return ""
}

// Registration is the new-account payload sent to POST /register.
type Registration struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     RoleType `json:"role,omitempty"`
}

// ValidateRegistration runs the field checks a sign-up form performs before
// any request is issued.
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("%w: username", hrmserrors.ErrMissingField)
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePasswordStrength(r.Password); err != nil {
		return err
	}
	if r.Role != "" {
		if _, err := ParseRole(string(r.Role)); err != nil {
			return err
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", hrmserrors.ErrInvalidEmail)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return fmt.Errorf("%w: %q", hrmserrors.ErrInvalidEmail, email)
	}
	return nil
}

// MinPasswordLength applies to registration and to password updates.
const MinPasswordLength = 8

// passwordClasses are the character classes a registration password must mix.
var passwordClasses = []struct {
	name string
	in   func(rune) bool
}{
	{"uppercase letter", unicode.IsUpper},
	{"lowercase letter", unicode.IsLower},
	{"number", unicode.IsDigit},
}

// ValidatePasswordStrength requires MinPasswordLength characters drawn from
// every class in passwordClasses.
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", hrmserrors.ErrWeakPassword, MinPasswordLength)
	}
	for _, class := range passwordClasses {
		if strings.IndexFunc(password, class.in) < 0 {
			return fmt.Errorf("%w: must contain at least one %s", hrmserrors.ErrWeakPassword, class.name)
		}
	}
	return nil
}

// HashPassword and CheckPasswordHash back the account table of the test backend.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
