package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrIncorrectPassword  = errors.New("incorrect old password")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrTodoNotFound       = errors.New("todo not found")
)

// PolicyViolation lists every password rule a candidate failed.
type PolicyViolation struct {
	Rules []string
}

func (e *PolicyViolation) Error() string {
	return "Password must contain " + strings.Join(e.Rules, ", ") + "."
}
