package employees

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/users"
)

// Updatable employee fields.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldPhoneNumber = "phoneNumber"
	FieldEmail       = "email"
)

var (
	ErrUnknownField  = errors.New("unknown employee field")
	ErrTooManyFields = errors.New("too many fields in one update")
	ErrInvalidPhone  = errors.New("phone number must be 10 digits")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)

	updatable = map[string]func(string) error{
		FieldFirstName:   nil,
		FieldLastName:    nil,
		FieldUsername:    nil,
		FieldPassword:    validatePassword,
		FieldPhoneNumber: validatePhone,
		FieldEmail:       validateEmail,
	}
)

// ValidateUpdate checks a partial update: between one and MaxUpdateFields
// known fields, none empty, each well formed.
func ValidateUpdate(fields map[string]string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: at least one field is required", hrmserrors.ErrMissingField)
	}
	if len(fields) > MaxUpdateFields {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyFields, len(fields), MaxUpdateFields)
	}

	// Sorted so the reported error is deterministic.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check, ok := updatable[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		value := fields[name]
		if value == "" {
			return fmt.Errorf("%w: %s", hrmserrors.ErrMissingField, name)
		}
		if check != nil {
			if err := check(value); err != nil {
				return err
			}
		}
	}
	return nil
}

func validatePassword(v string) error {
	if len(v) < users.MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", hrmserrors.ErrWeakPassword, users.MinPasswordLength)
	}
	return nil
}

func validatePhone(v string) error {
	if !phonePattern.MatchString(v) {
		return ErrInvalidPhone
	}
	return nil
}

func validateEmail(v string) error {
	if !emailPattern.MatchString(v) {
		return fmt.Errorf("%w: %q", hrmserrors.ErrInvalidEmail, v)
	}
	return nil
}
