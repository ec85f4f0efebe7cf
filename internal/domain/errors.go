package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicate is returned when a pre-insert existence check (or the
	// backing unique index) finds a matching record.
	ErrDuplicate = errors.New("record already exists")

	// ErrNotFound is a terminal lookup miss, distinct from malformed input.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyClaimed guards the one-shot benefit release.
	ErrAlreadyClaimed = errors.New("benefit already claimed")

	// ErrNotQualified is returned when a release targets a calamity the
	// beneficiary has no qualifying record for.
	ErrNotQualified = errors.New("beneficiary not qualified for calamity")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired is returned for a structurally valid but stale token.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError carries field-keyed messages. It never reaches the store:
// callers check input before any round trip.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil collapses an empty error to nil so call sites can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
