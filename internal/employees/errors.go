package employees

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("employees: not found")
	ErrEmailTaken         = errors.New("employees: email already registered")
	ErrInvalidCredentials = errors.New("employees: invalid credentials")
)

// ValidationError lists every rejected input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range []string{"first_name", "last_name", "email", "location", "languages", "password"} {
		if msg, ok := e.Fields[k]; ok {
			parts = append(parts, msg)
		}
	}
	return "employees: " + strings.Join(parts, "; ")
}
