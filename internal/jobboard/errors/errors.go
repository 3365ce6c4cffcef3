package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound        = fmt.Errorf("not found")
	ErrDuplicateName   = fmt.Errorf("duplicate name")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	ErrForbidden       = fmt.Errorf("forbidden")
)

// Validation is a field-keyed validation error. Workflows return it before
// any persistence call is made, so the caller can re-render the form with
// per-field messages.
type Validation struct {
	Fields map[string]string
}

// NewValidation returns an empty Validation ready to collect field errors.
func NewValidation() *Validation {
	return &Validation{Fields: map[string]string{}}
}

// Add records a message for the given field, keeping the first message when
// a field fails more than one check.
func (v *Validation) Add(field, message string) {
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

// Empty reports whether no field failed.
func (v *Validation) Empty() bool {
	return len(v.Fields) == 0
}

func (v *Validation) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *Validation if it is one.
func AsValidation(err error) (*Validation, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
