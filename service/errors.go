package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRecordNotFound is returned when the requested book does not exist.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError carries every field violation collected while checking a
// request body, so callers can report all of them at once.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	pairs := make([]string, len(fields))
	for i, field := range fields {
		pairs[i] = fmt.Sprintf("%s: %s", field, e.Errors[field])
	}
	return strings.Join(pairs, "; ")
}
